// Package config defines configuration structures for the dsfetch CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (DSFETCH_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    RootDir  string
//	    Progress bool
//	    Budgets  BudgetConfig
//	    Bucket   string
//	    Prefix   string
//	    Retry    RetryConfig
//	}
//
//	type BudgetConfig struct {
//	    Montgomery int
//	    Omniglot   int
//	}
package config
