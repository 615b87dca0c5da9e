// Package main provides the entry point for the Multicell editor.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"multicell/internal/app"
	"multicell/internal/version"
	"multicell/ui/mainwindow"
	"multicell/ui/prefs"
)

const appTitle = "Multicell"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	store := app.NewStore()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, store, appPrefs)
	win.SetTitle(appTitle)

	// A snapshot path on the command line replaces the generated network.
	if len(os.Args) > 1 {
		path := os.Args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read snapshot %s: %v", path, err)
		} else if !store.ImportJSON(data) {
			log.Printf("Snapshot %s is not valid, starting with a generated network", path)
		}
	}

	win.Show()
	fyneApp.Run()
}
