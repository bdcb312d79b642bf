package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	data   *datasetConfig
	output string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig, data: &datasetConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Convert a dataset",
		Long:  `Read a dataset and dump it in the format of the output location: CSV (.csv), SQLite3 (.db), PostgreSQL or MongoDB URL, or whitespace separated text otherwise.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx, cancel := commandContext()
			defer cancel()
			md, err := config.data.metadata()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			d, md, err := config.data.load(ctx, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Dumping %d samples as %s...", d.Len(), kindOf(config.output))
			n, err := writeDataset(ctx, config.output, d, md, config.data.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done: %d samples written", n)
		},
	}
	config.data.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv), SQLite3 (.db) or text file, or a PostgreSQL or MongoDB connection URL to dump the dataset to (defaults to STDOUT in text)")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	err := scc.data.Validate()
	if err != nil {
		return err
	}
	if scc.output != "" && scc.output == scc.data.input {
		return fmt.Errorf("input and output cannot be the same")
	}
	return nil
}
