package domain

import "fmt"

// Category identifies one test category executed against a target.
type Category string

const (
	PasswordBrute      Category = "password-brute"
	UsernameBrute      Category = "username-brute"
	ComprehensiveBrute Category = "comprehensive-brute"
	SQLInjection       Category = "sql-injection"
	HarmfulApplication Category = "harmful-application"
	SuspiciousQueries  Category = "suspicious-queries"
	Enumeration        Category = "enumeration"
	ShellCommands      Category = "shell-commands"
)

// CategoryKind distinguishes probes by the external tool that drives them.
type CategoryKind string

const (
	// KindNetwork categories drive the network scanner with scripted probes.
	KindNetwork CategoryKind = "network"
	// KindQuery categories drive the authenticated database client.
	KindQuery CategoryKind = "query"
)

// AllCategories is the declared execution order for a "run all" request.
// Runs never reorder it.
var AllCategories = []Category{
	PasswordBrute,
	UsernameBrute,
	ComprehensiveBrute,
	SQLInjection,
	HarmfulApplication,
	SuspiciousQueries,
	Enumeration,
	ShellCommands,
}

// Kind returns the tool family a category belongs to.
func (c Category) Kind() CategoryKind {
	switch c {
	case PasswordBrute, UsernameBrute, ComprehensiveBrute, Enumeration:
		return KindNetwork
	default:
		return KindQuery
	}
}

// NeedsWordlist reports whether the category consumes generated wordlists.
func (c Category) NeedsWordlist() bool {
	switch c {
	case PasswordBrute, UsernameBrute, ComprehensiveBrute:
		return true
	}
	return false
}

// Validate checks the category against the known set.
func (c Category) Validate() error {
	for _, known := range AllCategories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("unknown test category %q", c)
}

// ExpectedAlert returns the alert a correctly functioning monitoring product
// should raise for the category. Static operator-reference metadata, not
// derived from any run.
func (c Category) ExpectedAlert() string {
	switch c {
	case PasswordBrute, UsernameBrute, ComprehensiveBrute:
		return "Suspected brute force attack"
	case SQLInjection:
		return "Potential SQL injection"
	case HarmfulApplication:
		return "Login from a potentially harmful application"
	case SuspiciousQueries:
		return "Unusual query pattern detected"
	case Enumeration:
		return "Attempted database enumeration"
	case ShellCommands:
		return "Potential command execution through SQL"
	default:
		return ""
	}
}
