package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/klever-io/klv-txparams-go/config"
	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/klever-io/klv-txparams-go/txparams/api/gin"
	"github.com/klever-io/klv-txparams-go/txparams/fetchers"
	gas "github.com/klever-io/klv-txparams-go/txparams/gasStation"
	"github.com/klever-io/klv-txparams-go/txparams/reporters"
	"github.com/klever-io/klv-txparams-go/txparams/sessions"
	chainCore "github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	chainFactory "github.com/multiversx/mx-chain-go/cmd/node/factory"
	chainCommon "github.com/multiversx/mx-chain-go/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
	"github.com/multiversx/mx-sdk-go/core/polling"
	"github.com/urfave/cli"
)

const (
	defaultLogsPath    = "logs"
	logFilePrefix      = "klv-txparams"
	sentryFlushTimeout = time.Second * 2
	defaultMaxSessions = 100
)

type gasDefaultsService interface {
	Execute(ctx context.Context) error
	GasDefaults() (gas.GasDefaults, error)
	IsInterfaceNil() bool
}

type processingLoop interface {
	StartProcessingLoop() error
	Close() error
}

var log = logger.GetOrCreate("txparams/main")

// appVersion should be populated at build time using ldflags
// Usage examples:
// linux/mac:
//
//	go build -i -v -ldflags="-X main.appVersion=$(git describe --tags --long --dirty)"
//
// windows:
//
//	for /f %i in ('git describe --tags --long --dirty') do set VERS=%i
//	go build -i -v -ldflags="-X main.appVersion=%VERS%"
var appVersion = chainCommon.UnVersionedAppString

func main() {
	app := cli.NewApp()
	app.Name = "Transaction parameters CLI app"
	app.Usage = "Transaction parameters service keeps the nonces, gas limits and gas prices of multisig " +
		"transaction drafting sessions, fetching the wallet and Safe nonces on demand"
	app.Flags = getFlags()
	machineID := chainCore.GetAnonymizedMachineID(app.Name)
	app.Version = fmt.Sprintf("%s/%s/%s-%s/%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH, machineID)
	app.Authors = []cli.Author{
		{
			Name:  "The Klever Blockchain Team",
			Email: "contact@klever.io",
		},
	}

	app.Action = func(c *cli.Context) error {
		return startTxParams(c, app.Version)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startTxParams(ctx *cli.Context, version string) error {
	flagsConfig := getFlagsConfig(ctx)

	fileLogging, errLogger := attachFileLogger(log, flagsConfig)
	if errLogger != nil {
		return errLogger
	}

	log.Info("starting transaction parameters service", "version", version, "pid", os.Getpid())

	cfg, err := loadConfig(flagsConfig.ConfigurationFile)
	if err != nil {
		return err
	}

	if !check.IfNil(fileLogging) {
		logsCfg := cfg.GeneralConfig.Logs
		timeLogLifeSpan := time.Second * time.Duration(logsCfg.LogFileLifeSpanInSec)
		sizeLogLifeSpanInMB := uint64(logsCfg.LogFileLifeSpanInMB)
		err = fileLogging.ChangeFileLifeSpan(timeLogLifeSpan, sizeLogLifeSpanInMB)
		if err != nil {
			return err
		}
	}

	if len(cfg.GeneralConfig.NetworkAddress) == 0 {
		return fmt.Errorf("empty NetworkAddress in config file")
	}

	client, err := ethclient.Dial(cfg.GeneralConfig.NetworkAddress)
	if err != nil {
		return fmt.Errorf("%w while dialing %s", err, cfg.GeneralConfig.NetworkAddress)
	}
	defer client.Close()

	httpResponseGetter, err := txparams.NewHttpResponseGetter()
	if err != nil {
		return err
	}

	errorReporter, closeReporters, err := createErrorReporter(cfg.Sentry)
	if err != nil {
		return err
	}
	defer closeReporters()

	nonceSource, err := fetchers.NewEVMNonceSource(fetchers.ArgsEVMNonceSource{
		Client: client,
	})
	if err != nil {
		return err
	}

	nonceRecommender, err := fetchers.NewSafeNonceRecommender(fetchers.ArgsSafeNonceRecommender{
		ResponseGetter: httpResponseGetter,
		BaseURL:        cfg.GeneralConfig.GasEstimationAPI,
		ChainID:        cfg.GeneralConfig.ChainID,
	})
	if err != nil {
		return err
	}

	var gasDefaults sessions.GasDefaultsProvider
	var pollingHandler processingLoop
	if cfg.GasStation.Enabled {
		gasService, errCreate := createGasDefaultsService(cfg.GasStation, httpResponseGetter, client, errorReporter)
		if errCreate != nil {
			return errCreate
		}
		gasDefaults = gasService

		argsPollingHandler := polling.ArgsPollingHandler{
			Log:              log,
			Name:             "gas defaults polling handler",
			PollingInterval:  time.Second * time.Duration(cfg.GasStation.PollIntervalInSeconds),
			PollingWhenError: time.Second * time.Duration(cfg.GasStation.PollIntervalInSeconds),
			Executor:         gasService,
		}
		pollingHandler, err = polling.NewPollingHandler(argsPollingHandler)
		if err != nil {
			return err
		}
	}

	gasMarkup := cfg.GeneralConfig.GasMarkup
	if gasMarkup == 0 {
		gasMarkup = txparams.DefaultGasMarkup
	}
	maxSessions := cfg.GeneralConfig.MaxSessions
	if maxSessions == 0 {
		maxSessions = defaultMaxSessions
	}

	sessionsHolder, err := sessions.NewSessionsHolder(sessions.ArgsSessionsHolder{
		StoreFactory: sessions.NewStoreFactory(sessions.ArgsStoreFactory{
			NonceSource:      nonceSource,
			NonceRecommender: nonceRecommender,
			ErrorReporter:    errorReporter,
			GasMarkup:        gasMarkup,
			FetchTimeout:     time.Second * time.Duration(cfg.GeneralConfig.FetchTimeoutInSeconds),
		}),
		GasDefaults: gasDefaults,
		MaxSessions: maxSessions,
	})
	if err != nil {
		return err
	}

	httpServerWrapper, err := gin.NewWebServerHandler(gin.ArgsWebServerHandler{
		ListenAddress: flagsConfig.RestApiInterface,
		Sessions:      sessionsHolder,
		GasDefaults:   gasDefaults,
	})
	if err != nil {
		return err
	}

	err = httpServerWrapper.StartHttpServer()
	if err != nil {
		return err
	}

	if pollingHandler != nil {
		log.Info("starting gas defaults polling", "fetcher", cfg.GasStation.FetcherName)
		err = pollingHandler.StartProcessingLoop()
		if err != nil {
			return err
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	<-sigs

	log.Info("application closing, closing web server...")
	err = httpServerWrapper.Close()
	log.LogIfError(err)

	log.Info("closing sessions...")
	err = sessionsHolder.Close()
	log.LogIfError(err)

	if pollingHandler != nil {
		log.Info("closing polling handler...")
		err = pollingHandler.Close()
	}

	return err
}

func loadConfig(filepath string) (config.TxParamsConfig, error) {
	cfg := config.TxParamsConfig{}
	err := chainCore.LoadTomlFile(&cfg, filepath)
	if err != nil {
		return config.TxParamsConfig{}, err
	}

	return cfg, nil
}

func createErrorReporter(cfg config.SentryConfig) (txparams.ErrorReporter, func(), error) {
	logReporter, err := reporters.NewLogReporter(log)
	if err != nil {
		return nil, nil, err
	}

	if len(cfg.DSN) == 0 {
		return logReporter, func() {}, nil
	}

	hub, err := reporters.NewSentryHub(cfg.DSN, cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	sentryReporter, err := reporters.NewSentryReporter(hub)
	if err != nil {
		return nil, nil, err
	}

	multiReporter, err := reporters.NewMultiReporter(logReporter, sentryReporter)
	if err != nil {
		return nil, nil, err
	}

	log.Info("sentry error reporting enabled", "environment", cfg.Environment)

	return multiReporter, func() {
		sentryReporter.Close(sentryFlushTimeout)
	}, nil
}

func createGasDefaultsService(
	cfg config.GasStationConfig,
	responseGetter txparams.ResponseGetter,
	client *ethclient.Client,
	errorReporter txparams.ErrorReporter,
) (gasDefaultsService, error) {
	gasPriceFetcher, err := fetchers.NewGasPriceFetcher(fetchers.ArgsGasPriceFetcher{
		FetcherName:    cfg.FetcherName,
		ResponseGetter: responseGetter,
		EVMGasConfig: fetchers.EVMGasPriceFetcherConfig{
			ApiURL:   cfg.ApiURL,
			Selector: cfg.Selector,
		},
		NodeClient: client,
	})
	if err != nil {
		return nil, err
	}

	service, err := gas.NewGasDefaultsService(gas.ArgsGasDefaultsService{
		GasPriceFetcher: gasPriceFetcher,
		TipCapSuggester: client,
		ErrorReporter:   errorReporter,
	})
	if err != nil {
		return nil, err
	}

	return service, nil
}

func attachFileLogger(log logger.Logger, flagsConfig config.ContextFlagsConfig) (chainFactory.FileLoggingHandler, error) {
	var fileLogging chainFactory.FileLoggingHandler
	var err error
	if flagsConfig.SaveLogFile {
		args := file.ArgsFileLogging{
			WorkingDir:      flagsConfig.WorkingDir,
			DefaultLogsPath: defaultLogsPath,
			LogFilePrefix:   logFilePrefix,
		}
		fileLogging, err = file.NewFileLogging(args)
		if err != nil {
			return nil, fmt.Errorf("%w creating a log file", err)
		}
	}

	err = logger.SetDisplayByteSlice(logger.ToHex)
	log.LogIfError(err)
	logger.ToggleLoggerName(flagsConfig.EnableLogName)
	logLevelFlagValue := flagsConfig.LogLevel
	err = logger.SetLogLevel(logLevelFlagValue)
	if err != nil {
		return nil, err
	}

	if flagsConfig.DisableAnsiColor {
		err = logger.RemoveLogObserver(os.Stdout)
		if err != nil {
			return nil, err
		}

		err = logger.AddLogObserver(os.Stdout, &logger.PlainFormatter{})
		if err != nil {
			return nil, err
		}
	}
	log.Trace("logger updated", "level", logLevelFlagValue, "disable ANSI color", flagsConfig.DisableAnsiColor)

	return fileLogging, nil
}
