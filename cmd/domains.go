package cmd

import (
	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:     "domains",
	Aliases: []string{"domain"},
	Short:   "Manage the crawled domains of a crawler-based engine",
}

var domainsListCmd = &cobra.Command{
	Use:   "list <engine>",
	Short: "List the domains of an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domains, err := client.Domains(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Records("domain", domains)
	},
}

var domainsGetCmd = &cobra.Command{
	Use:   "get <engine> <domain-id>",
	Short: "Show a domain",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := client.Domain(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(domain)
	},
}

var domainsCreateCmd = &cobra.Command{
	Use:   "create <engine> <url>",
	Short: "Add a domain to crawl",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := client.CreateDomain(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		logger.Info().Str("url", args[1]).Str("id", domain.ID()).Msg("Domain added")
		return newPrinter(cmd).Record(domain)
	},
}

var domainsDeleteCmd = &cobra.Command{
	Use:   "delete <engine> <domain-id>",
	Short: "Remove a domain and its crawled documents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete domain "+args[1]+" and its crawled documents?") {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
		if err := client.DestroyDomain(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return newPrinter(cmd).Message("Deleted domain %s", args[1])
	},
}

var domainsRecrawlCmd = &cobra.Command{
	Use:   "recrawl <engine> <domain-id>",
	Short: "Crawl a domain again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := client.RecrawlDomain(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(domain)
	},
}

var domainsCrawlURLCmd = &cobra.Command{
	Use:   "crawl-url <engine> <domain-id> <url>",
	Short: "Add or refresh a single URL of a domain",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := client.CrawlURL(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(doc)
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.AddCommand(domainsListCmd, domainsGetCmd, domainsCreateCmd, domainsDeleteCmd, domainsRecrawlCmd, domainsCrawlURLCmd)

	domainsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}
