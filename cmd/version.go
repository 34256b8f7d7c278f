package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/questions"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the binary and question catalog versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("praxis %s%s\n", version, revision())
		fmt.Printf("catalog %s (embedded)\n", questions.Version())
	},
}

// revision returns " (abc1234)" from the VCS stamp, or "" when unstamped.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return " (" + s.Value[:7] + ")"
		}
	}
	return ""
}
