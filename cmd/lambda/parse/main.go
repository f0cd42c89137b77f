package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"lambda-layer-common/internal/config"
	"lambda-layer-common/internal/handlers"
	"lambda-layer-common/pkg/lambda"
)

var parseHandler *handlers.ParseHandler

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	config.ConfigureLogging(cfg.Log)

	sc := config.LoadServerless()
	logrus.WithFields(logrus.Fields{
		"function": sc.FunctionName,
		"region":   sc.Region,
		"stage":    sc.Stage,
	}).Debug("Cold start")

	parseHandler = handlers.NewParseHandler(cfg.Body.DecodeFormKeys)
}

func main() {
	awslambda.Start(lambda.Wrap(parseHandler.HandleParse))
}
