package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"chessd/engine"
	"chessd/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	depth := flag.Int("depth", engine.DefaultDepth, "search depth")
	timeLimit := flag.Duration("time", engine.DefaultTimeLimit, "time budget per bot move")
	hashMB := flag.Int("hash", engine.DefaultHashMB, "transposition table size in MB")
	workers := flag.Int("workers", 0, "root-parallel workers (0 = single-threaded search)")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var searcher engine.Searcher
	if *workers > 0 {
		searcher = engine.NewParallelSearcher(*workers, logger)
	} else {
		searcher = engine.NewSession(*hashMB, logger)
	}

	srv := server.New(server.Config{
		Searcher:  searcher,
		Depth:     *depth,
		TimeLimit: *timeLimit,
		Logger:    logger,
	})

	logger.Info("listening",
		zap.String("addr", *addr),
		zap.Int("depth", *depth),
		zap.Duration("time_limit", *timeLimit),
		zap.Int("workers", *workers),
	)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
