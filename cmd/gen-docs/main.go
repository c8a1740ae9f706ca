package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/stigoleg/jiggler/internal/config"
)

// This small tool generates shell completions and a man page from the
// jiggler's real flag set, so they never drift from --help.

const appDescription = "Keeps a session active by nudging the mouse or tapping a key while the user is away."

type flagDef struct {
	Short string
	Long  string
	Arg   string
	Desc  string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flags := collectFlags(config.NewFlagSet())
	if err := writeFiles(flags); err != nil {
		log.Fatal().Err(err).Msg("generate docs")
	}
}

func collectFlags(fs *pflag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *pflag.Flag) {
		def := flagDef{Long: "--" + f.Name, Desc: f.Usage}
		if f.Shorthand != "" {
			def.Short = "-" + f.Shorthand
		}
		if f.Value.Type() != "bool" {
			def.Arg = "<" + f.Value.Type() + ">"
		}
		flags = append(flags, def)
	})
	return append(flags, flagDef{Short: "-h", Long: "--help", Desc: "Show help message"})
}

func writeFiles(flags []flagDef) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}

	files := []struct {
		path  string
		write func(io.Writer, []flagDef)
	}{
		{filepath.Join(base, config.AppName+".bash"), writeBash},
		{filepath.Join(base, "_"+config.AppName), writeZsh},
		{filepath.Join(base, config.AppName+".fish"), writeFish},
		{filepath.Join("man", config.AppName+".1"), writeMan},
	}
	for _, f := range files {
		var b strings.Builder
		f.write(&b, flags)
		if err := os.WriteFile(f.path, []byte(b.String()), 0o644); err != nil {
			return err
		}
		log.Info().Str("file", f.path).Msg("wrote")
	}
	return nil
}

func writeBash(w io.Writer, flags []flagDef) {
	var opts []string
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		opts = append(opts, f.Long)
	}

	name := config.AppName
	fmt.Fprintf(w, "_%s() {\n", name)
	fmt.Fprint(w, "  local cur opts\n  COMPREPLY=()\n  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	fmt.Fprintf(w, "  opts=\"%s\"\n", strings.Join(opts, " "))
	fmt.Fprint(w, "  if [[ ${cur} == -* ]] ; then\n    COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n    return 0\n  fi\n}\n")
	fmt.Fprintf(w, "complete -F _%s %s\n", name, name)
}

func writeZsh(w io.Writer, flags []flagDef) {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, fmt.Sprintf("'%s[%s]%s'", zFlagName(f), strings.ReplaceAll(f.Desc, "'", ""), zArgSuffix(f.Arg)))
	}
	fmt.Fprintf(w, "#compdef %s\n_arguments %s\n", config.AppName, strings.Join(parts, " "))
}

func zFlagName(f flagDef) string {
	if f.Arg != "" {
		// zsh requires = for options with arguments
		return f.Long + "="
	}
	return f.Long
}

func zArgSuffix(arg string) string {
	if arg == "" {
		return ""
	}
	return ":value:" + strings.Trim(arg, "<>")
}

func writeFish(w io.Writer, flags []flagDef) {
	fmt.Fprintf(w, "complete -c %s -f\n", config.AppName)
	for _, f := range flags {
		line := "complete -c " + config.AppName
		if f.Short != "" {
			line += " -s " + strings.TrimPrefix(f.Short, "-")
		}
		line += " -l " + strings.TrimPrefix(f.Long, "--")
		if f.Arg != "" {
			line += " -r"
		} else {
			line += " -f"
		}
		fmt.Fprintf(w, "%s -d \"%s\"\n", line, strings.ReplaceAll(f.Desc, "\"", "\\\""))
	}
}

func writeMan(w io.Writer, flags []flagDef) {
	name := config.AppName
	fmt.Fprintf(w, ".TH \"%s\" \"1\" \"\" \"%s\" \"User Commands\"\n", strings.ToUpper(name), name)
	fmt.Fprintf(w, ".SH NAME\n%s \\- %s\n", name, appDescription)
	fmt.Fprintf(w, ".SH SYNOPSIS\n.B %s\n[flags]\n", name)
	fmt.Fprintf(w, ".SH DESCRIPTION\n%s\n", appDescription)
	fmt.Fprint(w, "Settings are read from a key=value file (MoveMouse, PressKeys, TrackInactivity, InactivityTimeout).\n")

	fmt.Fprint(w, ".SH OPTIONS\n")
	for _, f := range flags {
		names := f.Long
		if f.Short != "" {
			names = f.Short + ", " + names
		}
		if f.Arg != "" {
			names += " " + f.Arg
		}
		fmt.Fprintf(w, ".TP\n\\fB%s\\fR\n%s\n", strings.ReplaceAll(names, "-", "\\-"), f.Desc)
	}

	fmt.Fprint(w, ".SH EXAMPLES\n")
	examples := []struct{ cmd, desc string }{
		{name, "Run with settings.ini until interrupted."},
		{name + " -d 2h30m", "Run for 2 hours 30 minutes."},
		{name + " -c 22:00", "Run until 10:00 PM."},
		{name + " -t", "Start the interactive terminal UI."},
	}
	for _, e := range examples {
		fmt.Fprintf(w, ".TP\n\\fB%s\\fR\n%s\n", e.cmd, e.desc)
	}
}
