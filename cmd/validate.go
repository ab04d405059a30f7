package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/parallel"
	"github.com/zapulam/ScratchAgentic/internal/progress"
)

var validateCmd = &cobra.Command{
	Use:   "validate [request]",
	Short: "Screen requests with concurrent relevance and safety checks",
	Long: `Runs the relevance and safety checks concurrently against each request
and reports every check's verdict. With --file, validates one request
per line from the given file.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("file", "", "validate one request per line from this file")
	validateCmd.Flags().Int("concurrency", 4, "max requests validated in parallel in batch mode")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	caller, err := newCaller(cfg)
	if err != nil {
		return err
	}
	validator := calendar.NewValidator(caller, cfg.Thresholds.Calendar)

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		err = runBatchValidate(validator, file, concurrency)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("provide a request or --file")
		}
		var outcome parallel.Outcome
		outcome, err = validator.Validate(context.Background(), strings.Join(args, " "))
		if err == nil {
			printVerdicts(strings.Join(args, " "), outcome)
		}
	}
	if err != nil {
		return err
	}

	printUsage(caller)
	return nil
}

func runBatchValidate(validator *calendar.Validator, path string, concurrency int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}
	if len(inputs) == 0 {
		fmt.Println("No requests found in file.")
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	reporter := progress.NewReporter()
	reporter.Start(len(inputs))

	type batchResult struct {
		outcome parallel.Outcome
		err     error
	}
	results := make([]batchResult, len(inputs))

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, input := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, input string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome, err := validator.Validate(context.Background(), input)
			results[i] = batchResult{outcome: outcome, err: err}

			mu.Lock()
			done++
			reporter.Update(done, fmt.Sprintf("Validated %d/%d", done, len(inputs)))
			mu.Unlock()
		}(i, input)
	}
	wg.Wait()
	reporter.Finish()

	valid, invalid, failed := 0, 0, 0
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("ERROR    %s: %v\n", inputs[i], r.err)
			continue
		}
		if r.outcome.Valid {
			valid++
		} else {
			invalid++
		}
		printVerdicts(inputs[i], r.outcome)
	}

	fmt.Printf("\n%d valid, %d invalid, %d failed\n", valid, invalid, failed)
	return nil
}

func printVerdicts(input string, outcome parallel.Outcome) {
	status := "INVALID"
	if outcome.Valid {
		status = "VALID"
	}
	fmt.Printf("%-8s %s\n", status, input)
	for _, c := range outcome.Checks {
		mark := "fail"
		if c.Verdict.Valid {
			mark = "pass"
		}
		line := fmt.Sprintf("  %-10s %s", c.Name, mark)
		if len(c.Verdict.Details) > 0 {
			line += " (" + strings.Join(c.Verdict.Details, ", ") + ")"
		}
		fmt.Println(line)
	}
}
