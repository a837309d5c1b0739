package cmd

import (
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"io"
	"text/tabwriter"
)

var registerCmd = &cobra.Command{
	Use:   "register-commands",
	Short: "Overwrite the bot's slash commands without starting the bot",
	Long: "Registers the slash commands globally, or for discord.guild_id " +
		"when set. Commands that are no longer defined are removed.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := bob.New(cfg)
		if err != nil {
			return fmt.Errorf("error creating bot: %w", err)
		}
		created, err := b.RegisterSlashCommands(discordgo.WithContext(cmd.Context()))
		if err != nil {
			return fmt.Errorf("error registering commands: %w", err)
		}
		return printRegisteredCommands(cmd.OutOrStdout(), created)
	},
}

func printRegisteredCommands(out io.Writer, commands []*discordgo.ApplicationCommand) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(w, "/%s\t%s\n", c.Name, c.ID)
	}
	fmt.Fprintf(w, "registered %d commands\n", len(commands))
	return w.Flush()
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(registerCmd)
}
