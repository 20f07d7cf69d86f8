package testutil

import (
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	repository "quizbuilder_backend/internals/features/quizzes/repository"
	helper "quizbuilder_backend/internals/helpers"
	routes "quizbuilder_backend/internals/route"
)

// BaseURL is the API root the in-process app answers on.
const BaseURL = "http://quizbuilder.test/api"

// QuizApp is the HTTP API wired to an in-memory store.
type QuizApp struct {
	App  *fiber.App
	Repo *repository.MemoryRepository
}

// NewQuizApp builds the API the way main does, minus the network listener.
func NewQuizApp(t testing.TB) *QuizApp {
	t.Helper()
	repo, err := repository.NewMemoryRepository()
	if err != nil {
		t.Fatalf("memory repository: %v", err)
	}
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromError(c, err)
		},
	})
	routes.SetupRoutes(app, repo)
	return &QuizApp{App: app, Repo: repo}
}

// Do satisfies client.HTTPDoer by serving the request in-process.
func (a *QuizApp) Do(req *http.Request) (*http.Response, error) {
	return a.App.Test(req, -1)
}

// DownDoer fails every request as an unreachable server does.
type DownDoer struct{}

func (DownDoer) Do(*http.Request) (*http.Response, error) {
	return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errConnRefused}
}

var errConnRefused = errors.New("connection refused")
