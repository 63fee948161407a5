package cli

import "flag"

// MatchFlags are the command line flags for the dataset runner
type MatchFlags struct {
	ConfigPath string
	DataDir    string
	DBPath     string
	Verbose    bool
}

// ParseMatchFlags parses runner flags from the command line
func ParseMatchFlags() MatchFlags {
	var flags MatchFlags
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&flags.DataDir, "data", "testdata", "Directory with transactions.json, attachments.json and cases.json")
	flag.StringVar(&flags.DBPath, "db", "", "SQLite database for run history (empty = no persistence)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Print details for passing cases too")
	flag.Parse()
	return flags
}
