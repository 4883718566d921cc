package main

import (
	"context"
	"flag"
	"log"
	"os"

	"FinCast/internal/di"
	"FinCast/internal/domain/models"
	"FinCast/pkg/config"
	applogger "FinCast/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	horizon := flag.Int("horizon", models.DefaultHorizon, "days to forecast in the summary")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Printf("config load failed: %v", err)
		return 1
	}

	ctx := context.Background()
	tr, cleanup, err := di.InitializeTraining(ctx, cfg)
	if err != nil {
		log.Printf("training failed: %v", err)
		return 1
	}
	defer cleanup()

	st := tr.State
	tr.Log.Info("evaluation metrics",
		applogger.String("run_id", st.RunID),
		applogger.Float64("mae", st.Evaluation.MAE),
		applogger.Float64("rmse", st.Evaluation.RMSE),
		applogger.Float64("mape_pct", st.Evaluation.MAPE),
		applogger.Float64("directional_accuracy_pct", st.Evaluation.DirectionalAccuracy),
	)

	sum, err := tr.Dashboard.Summary(ctx, *horizon)
	if err != nil {
		tr.Log.Error("forecast summary failed", applogger.Error(err))
		return 1
	}
	tr.Log.Info("forecast summary",
		applogger.Int("horizon", sum.Horizon),
		applogger.Time("last_date", sum.LastDate),
		applogger.Float64("last_close", sum.LastActual),
		applogger.Time("forecast_date", sum.ForecastDate),
		applogger.Float64("forecast", sum.ForecastPrice),
		applogger.Float64("lower", sum.ForecastLow),
		applogger.Float64("upper", sum.ForecastHigh),
		applogger.Float64("change_pct", sum.PctChange),
	)
	tr.Log.Info("model saved",
		applogger.String("model_id", st.ModelID),
		applogger.String("store", cfg.Model.Store),
		applogger.Bool("reused", st.Reused),
	)
	return 0
}
