package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/weftml/weft/internal/config"
)

var newCmd = &cobra.Command{
	Use:   "new NAME [dir]",
	Short: "Scaffold a new .weft component file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		path, err := scaffoldComponent(args[0], dir)
		if err != nil {
			return err
		}
		cmd.Printf("created %s\n", path)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default weft.yaml and a starter component",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat("weft.yaml"); err == nil {
			return fmt.Errorf("weft.yaml already exists")
		}
		if err := config.WriteDefault("weft.yaml"); err != nil {
			return err
		}
		cmd.Println("created weft.yaml")
		path, err := scaffoldComponent("hello", ".")
		if err != nil {
			return err
		}
		cmd.Printf("created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(initCmd)
}

// scaffoldComponent writes NAME.weft into dir with a component named after
// the file. It refuses to overwrite an existing file.
func scaffoldComponent(name, dir string) (string, error) {
	base := strings.TrimSuffix(strings.ToLower(name), ".weft")
	if base == "" {
		return "", fmt.Errorf("component name is empty")
	}
	path := filepath.Join(dir, base+".weft")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	comp := componentName(base)
	pkg := packageName(dir)
	src := fmt.Sprintf(`package %s

component %s() {
	div(class: %q) {
		h1 { %q }
	}
}
`, pkg, comp, base, comp)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// componentName turns a file name like "nav_bar" or "nav-bar" into an
// exported identifier like "NavBar".
func componentName(base string) string {
	titler := cases.Title(language.English)
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	}) {
		sb.WriteString(titler.String(part))
	}
	if sb.Len() == 0 {
		return "Component"
	}
	return sb.String()
}

// packageName derives a Go package name from the target directory.
func packageName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "views"
	}
	name := strings.ToLower(filepath.Base(abs))
	var sb strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		return "views"
	}
	return out
}
