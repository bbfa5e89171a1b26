package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Middleware = func(http.Handler) http.Handler

// SetupRoutes : /api требует авторизации, /public/share ограничен по частоте
func SetupRoutes(r chi.Router, versions *VersionHandler, shares *ShareHandler, auth Middleware, publicLimit Middleware) {
	r.Route("/api/docs", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", versions.CreateDocument)

		r.Route("/{doc_id}", func(r chi.Router) {
			r.Get("/", versions.GetDocument)
			r.Head("/", versions.GetDocumentHead)
			r.Get("/compare", versions.CompareVersions)
			r.Get("/stats", versions.GetStatistics)

			r.Get("/versions", versions.ListVersions)
			r.Post("/versions", versions.AppendVersion)
			r.Route("/versions/{version_id}", func(r chi.Router) {
				r.Get("/", versions.GetVersion)
				r.Delete("/", versions.DeleteVersion)
				r.Post("/restore", versions.RestoreVersion)
			})

			r.Post("/share", shares.IssueShare)
			r.Delete("/share", shares.RevokeShare)
		})
	})

	r.Route("/public/share", func(r chi.Router) {
		r.Use(publicLimit)
		r.Get("/{token}", shares.GetSharedDocument)
	})
}
