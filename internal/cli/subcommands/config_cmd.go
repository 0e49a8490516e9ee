package subcommands

import (
	"fmt"
	"io"

	"MovieMatch/internal/config"

	"gopkg.in/yaml.v3"
)

// RunConfig displays the resolved configuration.
func RunConfig(w io.Writer, cfg config.Config) int {
	fmt.Fprintln(w, "=== MovieMatch Configuration ===")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(w, "Error marshaling config: %v\n", err)
		return 1
	}

	fmt.Fprint(w, string(data))
	return 0
}
