package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/state"
	"github.com/Luishgfarias/todo-front/internal/storage"
	"github.com/Luishgfarias/todo-front/internal/tui"
	"github.com/Luishgfarias/todo-front/pkg/api"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory may carry TODO_API_URL and
	// TODO_CONFIG_DIR; absence is not an error.
	_ = godotenv.Load() //nolint:errcheck

	apiURL := os.Getenv("TODO_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000"
	}

	dir, err := storage.DefaultDir()
	if err != nil {
		return err
	}
	store := storage.NewFileStore(dir)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("todo " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			if err := store.Remove(state.TokenKey); err != nil {
				return err
			}
			fmt.Println("sessão encerrada")
			return nil
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
	}

	queue := notify.NewQueue()

	// The client reads the bearer token through the session store, and
	// the session store talks to the API through the client. The
	// closure breaks the construction cycle; no request runs before
	// both exist.
	var session *state.SessionStore
	client := api.New(apiURL, func() string { return session.Token() })
	session = state.NewSessionStore(client, store, queue)
	tasks := state.NewTaskStore(client, store, queue)

	app := tui.NewApp(session, tasks, queue)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func printHelp() {
	fmt.Println(`todo - gerenciador de tarefas no terminal

usage:
  todo            abre a interface
  todo logout     encerra a sessão salva
  todo version    mostra a versão
  todo help       mostra esta ajuda

environment:
  TODO_API_URL      endereço da API (default http://localhost:3000)
  TODO_CONFIG_DIR   diretório de configuração (default ~/.todo-front)`)
}
