package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repotests"
)

type commandParams struct {
	serviceURL       string
	port             int
	host             string
	filters          rtest.RegexFilters
	suiteOptions     repotests.SuiteOptions
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
	jUnitFile        string
	skipFile         string
	recordFailures   string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "repository service URL")
	fs.StringVar(&c.host, "host", "localhost", "external hostname of the test harness")
	fs.IntVar(&c.port, "port", defaultPort, "port that the test harness will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.suiteOptions.Principal, "principal", "",
		"owner identity that tests ingest objects under")
	fs.StringVar(&c.suiteOptions.AdminPrincipal, "admin-principal", "",
		"administrative owner identity that purge-user-objects must refuse")
	fs.StringVar(&c.suiteOptions.RedisAddress, "redis", "",
		"address of the Redis index store, for services with the index-redis capability")
	fs.StringVar(&c.suiteOptions.ConsulAddress, "consul", "",
		"address of the Consul index store, for services with the index-consul capability")
	fs.StringVar(&c.suiteOptions.DynamoDBEndpoint, "dynamodb", "",
		"endpoint of the DynamoDB index store, for services with the index-dynamodb capability")
	fs.BoolVar(&c.stopServiceAtEnd, "stop-service-at-end", false, "tell repository service to exit after the test run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.skipFile, "skip-from", "", "file with test names to skip, one per line")
	fs.StringVar(&c.recordFailures, "record-failures", "", "file to write failed test names to")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}
