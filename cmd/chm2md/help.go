package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chm2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  html        Convert CHM HTML pages to Markdown chapters")
	fmt.Fprintln(w, "  markdown    Split already-converted Markdown into chapters")
	fmt.Fprintln(w, "  preview     Render a chapter to a standalone HTML page")
	fmt.Fprintln(w, "  doctor      Check the converter and directories")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chm2md help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the html and markdown commands.
func printConvertUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: chm2md %s [input-dir] [flags]\n", name)
	fmt.Fprintln(w)
	if name == "html" {
		fmt.Fprintln(w, "Convert every HTML page of a CHM export to a numbered Markdown chapter")
		fmt.Fprintln(w, "and copy the images each chapter uses into its own folder.")
	} else {
		fmt.Fprintln(w, "Rename Markdown files to numbered chapters and copy the images each")
		fmt.Fprintln(w, "chapter uses into its own folder. Output may equal input to work in place.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Directories:")
	fmt.Fprintln(w, "  -i, --input <dir>          Directory scanned for sources")
	fmt.Fprintln(w, "      --images <dir>         Shared image pool")
	fmt.Fprintln(w, "  -o, --output <dir>         Chapters, image folders and report")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --marker <name>        Pool segment in links (default: Pictures)")
	fmt.Fprintln(w, "      --parent-prefix <s>    Parent-relative form (default: ../Pictures/)")
	fmt.Fprintln(w)
	if name == "html" {
		fmt.Fprintln(w, "Converter:")
		fmt.Fprintln(w, "      --engine <s>           pandoc or native (default: pandoc)")
		fmt.Fprintln(w, "      --pandoc <path>        pandoc binary (default: pandoc from PATH)")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --report <name>        Report file name (default: README.md)")
	fmt.Fprintln(w, "      --report-title <s>     Report heading")
	fmt.Fprintln(w, "      --report-date <s>      Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                             Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                             Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --report-template <s>  Report template name")
	fmt.Fprintln(w, "      --asset-path <dir>     Override embedded templates and styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Control:")
	fmt.Fprintln(w, "  -k, --keep-going           Continue after a chapter fails")
	fmt.Fprintln(w, "  -n, --dry-run              Print the plan without writing")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show every copied image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CHM2MD_CONFIG, CHM2MD_INPUT_DIR, CHM2MD_OUTPUT_DIR, CHM2MD_IMAGE_DIR,")
	fmt.Fprintln(w, "  CHM2MD_ENGINE, CHM2MD_PANDOC, CHM2MD_REPORT_DATE")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chm2md preview <chapter.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a chapter to a standalone HTML page. Image links stay relative,")
	fmt.Fprintln(w, "so the page is written next to the chapter by default.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>        HTML file")
	fmt.Fprintln(w, "      --title <s>            Page title (default: first heading)")
	fmt.Fprintln(w, "      --asset-path <dir>     Override embedded templates and styles")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chm2md doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the converter, the configured directories and the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "      --json                 Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "html", "markdown":
		printConvertUsage(env.Stdout, args[0])
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chm2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chm2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
