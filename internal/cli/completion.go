package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "base", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsCmd     bool     // true if values come from the operation list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "expr", Short: "e", Help: "Expression to evaluate", IsCmd: true, ValueName: "expression"},
	{Long: "file", Short: "f", Help: "Batch file of expressions", IsFile: true, ValueName: "file"},
	{Long: "interactive", Short: "i", Help: "Start an interactive session"},
	{Long: "base", Help: "Output base for results", Values: []string{"2", "8", "10", "16", "36"}, ValueName: "base"},
	{Long: "hex", Short: "x", Help: "Display results in hexadecimal"},
	{Long: "timeout", Help: "Maximum evaluation time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "workers", Help: "Concurrent evaluators in batch mode", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "count"},
	{Long: "memory-limit", Help: "Temporary storage limit in words", ValueName: "words"},
	{Long: "metrics-addr", Help: "Metrics server listen address", ValueName: "address"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "no-color", Help: "Disable ANSI colors"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified
// shell, offering the given operation names where an expression is expected.
func GenerateCompletion(out io.Writer, shell string, operations []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, operations)
	case "zsh":
		return generateZshCompletion(out, operations)
	case "fish":
		return generateFishCompletion(out, operations)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, operations)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatCmdList joins operation names with space separators.
func formatCmdList(operations []string) string {
	return strings.Join(operations, " ")
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, operations []string) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry: operation flags, then file flags,
	// then flags with static values.
	type caseEntry struct {
		patterns []string
		body     string
	}
	var orderedCases []caseEntry

	for _, f := range flagRegistry {
		if f.IsCmd {
			patterns := []string{"--" + f.Long}
			if f.Short != "" {
				patterns = append(patterns, "-"+f.Short)
			}
			orderedCases = append(orderedCases, caseEntry{
				patterns: patterns,
				body:     `COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )`,
			})
		}
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	for _, f := range flagRegistry {
		if !f.IsCmd && !f.IsFile && len(f.Values) > 0 {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
			})
		}
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	cmdList := formatCmdList(operations)

	script := fmt.Sprintf(`# Bash completion script for zzcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_zzcalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available operations
    operations="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _zzcalc_completions zzcalc
`, strings.Join(opts, " "), cmdList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, operations []string) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	cmdList := formatCmdList(operations)

	script := fmt.Sprintf(`#compdef zzcalc

# Zsh completion script for zzcalc
# Add this to your ~/.zshrc or place in $fpath

_zzcalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
%s
}

_zzcalc "$@"
`, cmdList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsCmd {
		valueSuffix = fmt.Sprintf(":%s:($operations)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., --memory-limit)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, operations []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for zzcalc")
	lines = append(lines, "# Add this to ~/.config/fish/completions/zzcalc.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c zzcalc -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Execution modes", flags: filterFlags("expr", "file", "interactive")},
		{comment: "# Output options", flags: filterFlags("base", "hex", "quiet", "verbose", "no-color", "theme")},
		{comment: "# Limits", flags: filterFlags("timeout", "workers", "memory-limit")},
		{comment: "# Observability", flags: filterFlags("metrics-addr")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	cmdList := formatCmdList(operations)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, cmdList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, cmdList string) string {
	var parts []string
	parts = append(parts, "complete -c zzcalc")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsCmd {
		parts = append(parts, fmt.Sprintf("-xa '%s'", cmdList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions (e.g., --memory-limit)
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, operations []string) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries for operation flags and flags with
	// static values.
	var switchEntries []string

	for _, f := range flagRegistry {
		if f.IsCmd {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $zzcalcOperations | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	for _, f := range flagRegistry {
		if !f.IsCmd && !f.IsFile && len(f.Values) > 0 {
			var quotedVals []string
			for _, v := range f.Values {
				quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
			}
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", ")))
		}
	}

	// Format operation list for PowerShell
	psCmdList := ""
	for i, op := range operations {
		if i > 0 {
			psCmdList += ", "
		}
		psCmdList += fmt.Sprintf("'%s'", op)
	}

	script := fmt.Sprintf(`# PowerShell completion script for zzcalc
# Add this to your $PROFILE

$zzcalcOperations = @(%s)

Register-ArgumentCompleter -CommandName 'zzcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psCmdList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
