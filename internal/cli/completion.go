package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/io"
)

// completionCommand generates shell completion scripts. Method references
// are completed by the render, layout and tree commands themselves.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for structogram and print it to stdout.

  $ source <(structogram completion bash)
  $ structogram completion zsh > "${fpath[1]}/_structogram"
  $ structogram completion fish > ~/.config/fish/completions/structogram.fish
  PS> structogram completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeMethodRefs completes the optional method argument of render,
// layout and tree with the references the class file declares.
func completeMethodRefs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	class, err := io.ImportClass(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var refs []string
	for _, m := range class.Methods {
		if ref := methodRef(class.Methods, m); strings.HasPrefix(ref, toComplete) {
			refs = append(refs, ref)
		}
	}
	return refs, cobra.ShellCompDirectiveNoFileComp
}
