package sapling

/*
Gini takes a slice of labels and returns their Gini impurity: the probability
of mislabelling an example taken at random when labelling it at random
according to the distribution of labels, that is 1 - Σ p(c)² over the labels c
present. It is 0 only when all labels are equal.
It returns ErrEmptyInput if no labels are given.
*/
func Gini(labels []int) (float64, error) {
	if len(labels) == 0 {
		return 0, ErrEmptyInput
	}
	classes, k := classIndexes(labels)
	ct := make([]int, k)
	for _, c := range classes {
		ct[c]++
	}
	return gini(len(labels), ct), nil
}

// gini returns the Gini impurity of n examples with class counts ct.
func gini(n int, ct []int) float64 {
	if n == 0 {
		return 0
	}
	var sum float64
	fn := float64(n)
	for _, c := range ct {
		p := float64(c) / fn
		sum += p * p
	}
	return 1 - sum
}

// weightedGini returns the Gini impurity of n examples with class counts ct
// multiplied by n.
func weightedGini(n int, ct []int) float64 {
	return float64(n) * gini(n, ct)
}
