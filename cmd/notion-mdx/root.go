/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	configEnv     = "NOTION_MDX_CONFIG"
	defaultConfig = "~/.config/notion-mdx.yaml"
	tokenEnv      = "NOTION_TOKEN"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Command to run to retrieve the Notion integration token.  Falls back to $NOTION_TOKEN.
	AuthTokenCmd []string
	WithVCR      bool

	// Where the config was actually read from, if anywhere.
	ConfigActual string
	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "notion-mdx",
	Short: "Export a Notion database as Markdown/MDX documents",
	Long: `
Write every page of a Notion database out as a Markdown (MDX) file, with front matter, resolved
links between pages, and a _meta.ts per directory to keep your site's navigation in order.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("notion-mdx: failed to initialise config: %w", err)
		}
		setupLogging()
		setupTerminal()
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfig+", respects "+configEnv+")")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringSliceVar(&AuthTokenCmd, "auth-token-cmd", []string{}, "shell command to retrieve the Notion integration token (default: $"+tokenEnv+")")
	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay API responses")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(Config, os.Getenv(configEnv))
	if err != nil {
		return err
	}
	ParsedConfig = cfg
	ConfigActual = path

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("notion-mdx: failed to bind flags: %w", err)
	}

	return nil
}

// loadConfig reads the YAML config from flagPath, else envPath, else the default location.  Only
// the default is allowed to be missing; the returned path is empty in that case.
func loadConfig(flagPath string, envPath string) (YamlConfig, string, error) {
	var cfg YamlConfig

	explicit := true
	path := flagPath
	if path == "" {
		path = envPath
	}
	if path == "" {
		path = defaultConfig
		explicit = false
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, "", fmt.Errorf("notion-mdx: unable to expand homedir: %w", err)
	}

	yamlFile, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		if !explicit {
			return cfg, "", nil
		}
		return cfg, "", fmt.Errorf("notion-mdx: specified config file %s does not exist: %w", expanded, err)
	}
	if err != nil {
		return cfg, "", fmt.Errorf("notion-mdx: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a key we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &cfg); err != nil {
		return cfg, "", fmt.Errorf("notion-mdx: issue parsing config file %s: %w", expanded, err)
	}

	return cfg, expanded, nil
}

type YamlConfig struct {
	IncludeJSON   *bool `yaml:"include-json"`
	NoFrontmatter *bool `yaml:"no-frontmatter"`
	SkipMeta      *bool `yaml:"skip-meta"`
	Hextra        *bool `yaml:"hextra"`
	WithVCR       *bool `yaml:"with-vcr"`

	Database     string   `yaml:"database"`
	Output       string   `yaml:"output"`
	BasePath     string   `yaml:"base-path"`
	Extension    string   `yaml:"extension"`
	SiteURL      string   `yaml:"site-url"`
	MetricsFile  string   `yaml:"metrics-file"`
	AuthTokenCmd []string `yaml:"auth-token-cmd"`
}

// Copy config file values onto every flag of cmd the user didn't set on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("notion-mdx: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// e.g. `list databases` has no --output, but the config file may well set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("notion-mdx: found unrecognised field: %+v", field.Name())
			}
			if b != nil {
				if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *b)); err != nil {
					return fmt.Errorf("notion-mdx: couldn't set %s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("notion-mdx: found unrecognised field: %+v", field.Name())
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("notion-mdx: couldn't set %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("notion-mdx: found unrecognised field: %+v", field.Name())
			}
			for _, s := range ss {
				// repeatedly calling Set() appends to the slice
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("notion-mdx: couldn't set %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("notion-mdx: found unrecognised field: %+v", field.Name())
		}
	}

	return nil
}

// resolveToken runs --auth-token-cmd and takes the first line of its output, or else reads
// $NOTION_TOKEN.
func resolveToken() (string, error) {
	if len(AuthTokenCmd) > 0 {
		out, err := exec.Command(AuthTokenCmd[0], AuthTokenCmd[1:]...).Output()
		if err != nil {
			return "", fmt.Errorf("notion-mdx: couldn't execute auth-token-cmd '%v': %w", AuthTokenCmd, err)
		}
		return strings.TrimSpace(strings.Split(string(out), "\n")[0]), nil
	}

	return strings.TrimSpace(os.Getenv(tokenEnv)), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("notion-mdx: execution error: %w", err)
	}

	return nil
}
