package parser

// Classification is the outcome of matching one log line against the danger patterns.
// Categories are independent: a line may be both an error and critical.
type Classification struct {
	FailedLogin bool
	Error       bool
	Critical    bool
	Address     string // set only for failed logins carrying an address token
}

// Parser defines the interface for line classifiers
type Parser interface {
	Classify(line string) Classification
}
