package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type RouterConfig struct {
	RateLimitPerMinute int
	AdminToken         string
	Metrics            http.Handler
}

func NewRouter(cfg RouterConfig, h *CalcHandler, hRules *TextRuleHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	RegisterRoutes(r, cfg, h, hRules)
	return r
}

func RegisterRoutes(r chi.Router, cfg RouterConfig, h *CalcHandler, hRules *TextRuleHandler) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	// --- калькулятор ---
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)
		if cfg.RateLimitPerMinute > 0 {
			pr.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		}

		pr.Get("/about", h.About)
		pr.Post("/calculate", h.Calculate)
		pr.Post("/integrate", h.Integrate)
		pr.Post("/differentiate", h.Differentiate)
		pr.Post("/trig", h.Trig)
		pr.Post("/voice", h.Voice)
	})

	if hRules == nil {
		return
	}

	// --- правила транскрипта ---
	r.Route("/text-rules", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			AdminMiddleware(cfg.AdminToken),
		)

		pr.Get("/letters", hRules.ListLetterRules)
		pr.Post("/letters", hRules.AddLetterRule)
		pr.Delete("/letters", hRules.DeleteLetterRule)

		pr.Get("/words", hRules.ListWordRules)
		pr.Post("/words", hRules.AddWordRule)
		pr.Delete("/words", hRules.DeleteWordRule)
	})
}
