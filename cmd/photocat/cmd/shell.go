package cmd

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"photocat/internal/adapters/clipboard"
	"photocat/internal/adapters/tui"
	"photocat/internal/adapters/viewer"
	"photocat/internal/application/commands"
)

var errClipboard = errors.New("clipboard not available: install xclip, xsel or wl-clipboard")

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell. Type HELP inside it for the command list.
On exit with unsaved changes the shell asks whether to save them.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	app := tui.NewApp(GetSession(), viewer.NewOpener(cfg.Viewer), clipboard.New())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}

var openCmd = &cobra.Command{
	Use:   "open <target>",
	Short: "Open a cataloged file in the image viewer",
	Long: `Open a cataloged file in the configured viewer, $PHOTOCAT_VIEWER,
or the platform default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := commands.NewOpenCommand(GetSession(), viewer.NewOpener(cfg.Viewer), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("opened in viewer")
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <target>",
	Short: "Copy a cataloged file's path to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clip := clipboard.New()
		if clip == nil {
			return errClipboard
		}
		path, err := commands.NewCopyCommand(GetSession(), clip, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "Copied %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(copyCmd)
}
