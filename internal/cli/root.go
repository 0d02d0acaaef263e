package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/mdanki/internal/config"
	"github.com/dgallion1/mdanki/internal/pipeline"
	"github.com/dgallion1/mdanki/internal/render"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	fs  afero.Fs
	cfg config.Config
	log *slog.Logger
}

// NewRoot builds the command tree. The root command converts a markdown
// document into a semicolon-delimited flashcard CSV.
func NewRoot() *cobra.Command {
	return newRoot(afero.NewOsFs(), os.Stderr)
}

func newRoot(fs afero.Fs, logOut io.Writer) *cobra.Command {
	a := &app{fs: fs}

	cmd := &cobra.Command{
		Use:   "mdanki <input> <output>",
		Short: "Convert a markdown flashcard document into an Anki CSV",
		Long: `Decks are level-1 headings. Each deck needs a level-2 "Questions" section
whose level-3 headings are cards. Level-4 headings inside a card name its
fields: Question, Answer and Uuid.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Only inspect and serve validate the configuration; conversion
			// takes nothing but its two arguments.
			a.cfg = config.Load()
			a.log = newLogger(a.cfg, logOut)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.converter(render.DefaultExtensions).Convert(args[0], args[1])
			return err
		},
	}
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newServeCmd(a))
	return cmd
}

func (a *app) converter(extensions []string) *pipeline.Converter {
	proc := pipeline.NewProcessor(render.NewGoldmark(extensions...), a.log)
	return pipeline.NewConverter(a.fs, proc, a.log)
}

// configured validates the loaded configuration for commands that use it.
func (a *app) configured() error {
	return a.cfg.Validate()
}

// newLogger falls back to info level and JSON output for unknown values.
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
