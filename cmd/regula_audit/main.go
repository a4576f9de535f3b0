package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/app"
	"github.com/yungbote/regula-backend/internal/modules/regula/validation"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/services"
)

type output struct {
	Report validation.InvariantReport     `json:"report"`
	Repair *services.StrategyRepairResult `json:"strategy_repair,omitempty"`
}

func main() {
	var userFlag string
	var fixStrategies bool
	var dryRun bool
	flag.StringVar(&userFlag, "user", "", "audit a single user id (default: everyone)")
	flag.BoolVar(&fixStrategies, "fix-strategies", false, "rewrite legacy strategy ids to canonical ids")
	flag.BoolVar(&dryRun, "dry-run", false, "with -fix-strategies, list affected sub-plans without writing")
	flag.Parse()

	userID := uuid.Nil
	if raw := strings.TrimSpace(userFlag); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fmt.Printf("invalid -user %q: %v\n", raw, err)
			os.Exit(2)
		}
		userID = id
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	out := output{}

	if fixStrategies {
		repair := services.NewStrategyRepair(application.Log, application.Repos.SubPlan)
		res, err := repair.Run(dbctx.Context{Ctx: ctx}, userID, dryRun)
		if err != nil {
			fmt.Printf("strategy repair: %v\n", err)
			application.Close()
			os.Exit(1)
		}
		out.Repair = &res
	}

	out.Report = validation.ValidateRegulaInvariants(ctx, application.DB, userID)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Printf("encode report: %v\n", err)
		application.Close()
		os.Exit(1)
	}
	if out.Report.Failed() {
		application.Close()
		os.Exit(3)
	}
}
