package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	jobdeckApp "jobdeck/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// --mcp runs the stdio MCP server instead of the GUI.
	for _, arg := range os.Args[1:] {
		if arg == "--mcp" {
			jobdeckApp.ServeMCP()
			return
		}
	}

	app := jobdeckApp.New()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err := wails.Run(&options.App{
		Title:     "JobDeck",
		Width:     1200,
		Height:    860,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 243, G: 244, B: 246, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			About: &mac.AboutInfo{
				Title:   "JobDeck",
				Message: "Resume and portfolio builder with template export",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
