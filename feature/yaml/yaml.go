/*
Package yaml provides methods to parse feature metadata from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/sapling/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object with a features property, a list with the
names of the continuous features in the order they take on each example, and a
label property with the name of the label feature. For example:

	features:
	  - sepal_length
	  - sepal_width
	label: class
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	doc := struct {
		Features []string `yaml:"features"`
		Label    string   `yaml:"label"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	result := &feature.Metadata{Label: feature.NewLabelFeature(doc.Label)}
	for _, fn := range doc.Features {
		result.Features = append(result.Features, feature.NewContinuousFeature(fn))
	}
	err = result.Validate()
	if err != nil {
		return nil, err
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	result, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return result, err
}

/*
WriteMetadata takes metadata and returns it as a YML document that ReadMetadata
can parse.
*/
func WriteMetadata(md *feature.Metadata) ([]byte, error) {
	doc := struct {
		Features []string `yaml:"features"`
		Label    string   `yaml:"label"`
	}{md.FeatureNames(), md.Label.Name()}
	return yaml.Marshal(&doc)
}
