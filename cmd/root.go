package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilsiker/disarm/pkg"
	"github.com/nilsiker/disarm/pkg/common"
	"github.com/nilsiker/disarm/pkg/expression"
	"github.com/nilsiker/disarm/pkg/handlers"
	"github.com/nilsiker/disarm/pkg/template"
)

var templateFileName string
var outputFileName string
var overwrite bool
var indent bool
var link bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the disarm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("disarm-%v \n", Version())
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Starts an http server to listen for requests for template decoding",
	Run: func(cmd *cobra.Command, args []string) {
		Listen()
	},
}

var exprCmd = &cobra.Command{
	Use:   "expr <expression>",
	Short: "Parses a single ARM expression and prints its tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		node, err := expression.Parse(args[0])
		if err != nil {
			return fmt.Errorf("Error parsing expression: %w", err)
		}

		return common.WriteOutput(os.Stdout, handlers.ParsedExpression{
			Expression: expression.Render(node),
			AST:        node,
		}, indent)
	},
}

var rootCmd = &cobra.Command{
	Use:   "disarm",
	Short: "Decodes an ARM template document into a typed model",
	Long:  `Decodes an ARM template document into a typed model, parsing the ARM expressions embedded in its string values into expression trees`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		inputFile, err := os.Open(templateFileName)
		if err != nil {
			return fmt.Errorf("Error opening template file: %w", err)
		}
		defer inputFile.Close()

		decoded, err := template.Decode(inputFile)
		if err != nil {
			return fmt.Errorf("Error decoding template: %w", err)
		}

		var writer io.Writer = os.Stdout
		var outputFile *os.File
		if outputFileName != "" {
			outputFile, err = getFile(outputFileName, overwrite)
			if err != nil {
				return err
			}
			defer outputFile.Close()
			writer = outputFile
		}

		if link {
			links, err := decoded.LinkDependencies()
			if err != nil {
				return fmt.Errorf("Error linking template dependencies: %w", err)
			}
			err = common.WriteOutput(writer, handlers.LinkedTemplate{Template: decoded, DependsOn: links}, indent)
		} else {
			err = common.WriteOutput(writer, decoded, indent)
		}
		if err != nil {
			return fmt.Errorf("Error writing decoded template: %w", err)
		}

		if outputFile != nil {
			if err := outputFile.Sync(); err != nil {
				return fmt.Errorf("Error saving output file: %w", err)
			}
		}
		return nil
	},
}

func getFile(fileName string, overwrite bool) (*os.File, error) {
	if err := checkFile(fileName, overwrite); err != nil {
		return nil, err
	}

	outputFile, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE, 0644)

	if err != nil {
		return nil, fmt.Errorf("Error opening output file: %w", err)
	}
	return outputFile, nil
}

func init() {

	rootCmd.Flags().StringVarP(&templateFileName, "file", "f", "azuredeploy.json", "name of the template file to decode, default is azuredeploy.json in the current directory")
	rootCmd.Flags().StringVarP(&outputFileName, "output", "o", "", "file name to write the decoded model to, default is stdout")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "specifies if to overwrite the output file if it already exists, default is false")
	rootCmd.Flags().BoolVarP(&indent, "indent", "i", false, "specifies if the json output should be indented")
	rootCmd.Flags().BoolVarP(&link, "link", "l", false, "specifies if dependsOn entries should be resolved to resource indices and included in the output")
	exprCmd.Flags().BoolVarP(&indent, "indent", "i", false, "specifies if the json output should be indented")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(exprCmd)
}

// Execute runs the template decoder
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Version returns the version string
func Version() string {
	return fmt.Sprintf("%v-%v", pkg.Version, pkg.Commit)
}

func checkFile(dest string, overwrite bool) error {
	if _, err := os.Stat(dest); err == nil {
		if !overwrite {
			return fmt.Errorf("File %s exists and overwrite not specified", dest)
		}
		if err := os.Truncate(dest, 0); err != nil {
			return fmt.Errorf("File %s exists and truncate failed with error:%w", dest, err)
		}
	} else {
		if !os.IsNotExist(err) {
			return fmt.Errorf("unable to access output file: %s. %w", dest, err)
		}
	}
	return nil
}
