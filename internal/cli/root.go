package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"pathnottaken-go/internal/model"
)

// Simulator 执行反事实分析
type Simulator interface {
	Simulate(ctx context.Context, req *model.SimulationRequest) (json.RawMessage, error)
}

// App CLI命令依赖的服务
type App struct {
	Simulator Simulator
	Now       func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd 创建 "pnt" 根命令并注册子命令
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pnt",
		Short:         "Counterfactual analysis of decisions you already made",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSimulateCmd(app),
		newExportCmd(app),
		newSchemaCmd(),
	)

	return root
}
