////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package cmd initializes the CLI and config parsers as well as the logger.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"gitlab.com/elixxir/cipherbench/benchmark"
	"gitlab.com/elixxir/cipherbench/cmd/conf"
	"gitlab.com/elixxir/cipherbench/storage"
)

var cfgFile string
var verbose bool
var validConfig bool
var showVer bool
var workersOverride int

// rootCmd represents the base command when called without any sub-commands
var rootCmd = &cobra.Command{
	Use:   "cipherbench <dataset directory> <ALGORITHM_MODE>",
	Short: "Benchmarks an encrypt-write-read-decrypt pipeline over a dataset",
	Long: `cipherbench encrypts a directory of files in parallel, writes the
ciphertext and its layout through the dataset container, reads both back,
decrypts, and reports per-stage timings.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if showVer {
			printVersion()
			return
		}
		if len(args) != 2 {
			fmt.Println("Usage : cipherbench <dataset directory> " +
				"<ALGORITHM_MODE>")
			os.Exit(1)
		}

		params := loadParams()
		if workersOverride > 0 {
			params.Workers = workersOverride
		}

		report, err := benchmark.RunParallel(benchmark.Config{
			InputDir:   args[0],
			CipherName: args[1],
			Workers:    params.Workers,
			MinRuntime: params.MinRuntime,
			OutputRoot: params.OutputDir,
		})
		if err != nil {
			jww.ERROR.Printf("Pipeline failed: %+v", err)
			os.Exit(1)
		}

		persistReport(params, report)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("Exiting with error: %s", err.Error())
		os.Exit(1)
	}
}

// loadParams builds Params from the loaded viper config. A missing or
// unreadable config file is not fatal; every param has a default.
func loadParams() *conf.Params {
	if !validConfig {
		jww.WARN.Printf("No config file loaded, using defaults "+
			"(looked for %s)", cfgFile)
	}
	params, err := conf.NewParams(viper.GetViper())
	if err != nil {
		jww.FATAL.Panicf("Unable to load params: %+v", err)
	}
	return params
}

// persistReport upserts each stage's result keyed by a timestamped run
// id. Runs with no database configured and no devMode flag skip
// persistence entirely.
func persistReport(params *conf.Params, report *benchmark.Report) {
	if params.Database.Address == "" && !params.DevMode {
		return
	}

	store, err := storage.NewStorage(params.Database.Username,
		params.Database.Password, params.Database.Name,
		params.Database.Address, params.Database.Port, params.DevMode)
	if err != nil {
		jww.WARN.Printf("Results not persisted: %+v", err)
		return
	}

	runID := report.Cipher + "-" +
		strconv.FormatInt(time.Now().Unix(), 10)
	persistStages(store, runID, report)
}

// persistStages upserts one StageResult per reported stage, then reads
// the run back to confirm what was stored.
func persistStages(store *storage.Storage, runID string,
	report *benchmark.Report) {
	now := time.Now()
	for _, stage := range report.Stages {
		err := store.UpsertStageResult(&storage.StageResult{
			RunID:      runID,
			Stage:      stage.Stage,
			Cipher:     report.Cipher,
			Workers:    report.Workers,
			Iterations: stage.Iterations,
			Bytes:      report.GlobalSize,
			Seconds:    stage.Seconds,
			Timestamp:  now,
		})
		if err != nil {
			jww.WARN.Printf("Failed to persist %s result: %+v",
				stage.Stage, err)
		}
	}

	results, err := store.GetStageResults(runID)
	if err != nil {
		jww.WARN.Printf("Failed to read back run %s: %+v", runID, err)
		return
	}
	jww.INFO.Printf("Persisted %d stage results as run %s",
		len(results), runID)
	const mb = 1024 * 1024
	for _, res := range results {
		jww.DEBUG.Printf("%s: %.2f MB/s stored", res.Stage,
			res.Throughput()/mb)
	}
}

// init is the initialization function for Cobra which defines commands
// and flags.
func init() {
	cobra.OnInitialize(initConfig, initLog)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "",
		"config file (default is $HOME/.cipherbench/params.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose mode for debugging")
	rootCmd.Flags().BoolVarP(&showVer, "version", "V", false,
		"Show the benchmark version information.")
	rootCmd.Flags().IntVarP(&workersOverride, "workers", "n", 0,
		"Number of parallel workers (defaults to the configured value)")

	err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup(
		"verbose"))
	handleBindingError(err, "verbose")
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	//Use default config location if none is passed
	if cfgFile == "" {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			jww.ERROR.Println(err)
			os.Exit(1)
		}

		cfgFile = home + "/.cipherbench/params.yaml"
	}

	validConfig = true
	if _, err := os.Stat(cfgFile); err != nil {
		validConfig = false
		return
	}

	viper.SetConfigFile(cfgFile)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		jww.ERROR.Printf("Unable to read config file (%s): %s", cfgFile,
			err.Error())
		validConfig = false
	}
}

// initLog initializes logging thresholds and the log path.
func initLog() {
	// If verbose flag set then log more info for debugging
	if viper.GetBool("verbose") {
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetStdoutThreshold(jww.LevelDebug)
	} else {
		jww.SetLogThreshold(jww.LevelInfo)
		jww.SetStdoutThreshold(jww.LevelInfo)
	}

	if viper.Get("paths.log") != nil {
		// Create log file, overwrites if existing
		logPath := viper.GetString("paths.log")
		logFile, err := os.Create(logPath)
		if err != nil {
			fmt.Printf("Invalid or missing log path %s, "+
				"default path used.\n", logPath)
		} else {
			jww.SetLogOutput(logFile)
		}
	}
}
