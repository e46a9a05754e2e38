package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/bnema/keystamp/internal/version"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

func currentVersion() versionInfo {
	info := versionInfo{
		Version:   version.Version,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range build.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
				info.Revision = setting.Value[:12]
			}
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		// version works without a readable configuration.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := currentVersion()
			return writeOutput(cmd, output, info, func() error {
				line := "ks " + info.Version
				if info.Revision != "" {
					line += " (" + info.Revision + ")"
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s %s\n", line, info.GoVersion, info.Platform)
				return err
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
