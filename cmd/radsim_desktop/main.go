package main

import (
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/user/radsim_go/internal/analysis"
	"github.com/user/radsim_go/internal/config"
	"github.com/user/radsim_go/internal/httpapi"
	"github.com/user/radsim_go/internal/materials"
)

func main() {
	log.SetPrefix("[RADSIM] ")

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	catalog, err := materials.NewDefaultCatalog(settings.DataDir)
	if err != nil {
		log.Fatalf("failed to build catalog: %v", err)
	}
	if err := catalog.CheckLockstep(); err != nil {
		log.Printf("warning: %v", err)
	}
	calc := analysis.NewCalculator(catalog)
	app := NewApp(calc) // Defined in app.go

	err = wails.Run(&options.App{
		Title:  "Radiation Interaction Simulator",
		Width:  880,
		Height: 720,
		AssetServer: &assetserver.Options{
			Handler: httpapi.NewHandler(calc),
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		OnStartup:        app.Startup,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Fatal("Error running Wails app: ", err.Error())
	}
}
