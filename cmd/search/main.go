package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/blevesearch/bleve/v2"
	"github.com/rs/cors"

	"stixbridge/internal/config"
	"stixbridge/internal/stixcore"
)

const listenPort = ":8080"

// searchHandler serves actor lookups from the Bleve index.
func searchHandler(indexPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryStr := r.URL.Query().Get("query")
		if queryStr == "" {
			http.Error(w, "Query parameter 'query' is required", http.StatusBadRequest)
			return
		}

		index, err := bleve.Open(indexPath)
		if err != nil {
			log.Printf("Failed to open index: %v", err)
			http.Error(w, "Internal server error: could not open search index", http.StatusInternalServerError)
			return
		}
		defer index.Close()

		query := bleve.NewMatchQuery(queryStr)
		searchRequest := bleve.NewSearchRequest(query)
		searchRequest.Fields = []string{"name"}
		searchRequest.Size = 10 // Limit results for API

		searchResults, err := index.Search(searchRequest)
		if err != nil {
			log.Printf("Search failed: %v", err)
			http.Error(w, "Internal server error: search failed", http.StatusInternalServerError)
			return
		}

		var apiResults []stixcore.APISearchResult
		for _, hit := range searchResults.Hits {
			name := ""
			if n, ok := hit.Fields["name"]; ok {
				if nameStr, isStr := n.(string); isStr {
					name = nameStr
				}
			}

			apiResults = append(apiResults, stixcore.APISearchResult{
				ID:    hit.ID,
				Name:  name,
				Score: hit.Score,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(apiResults); err != nil {
			log.Printf("Failed to encode search results: %v", err)
			http.Error(w, "Internal server error: could not encode results", http.StatusInternalServerError)
		}
	}
}

func main() {
	log.Printf("Starting StixBridge Search API on port %s", listenPort)

	cfg := config.FromEnv()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
	})

	hm := http.NewServeMux()
	hm.HandleFunc("/api/search", searchHandler(cfg.Index.Path))

	handler := c.Handler(hm)

	log.Fatal(http.ListenAndServe(listenPort, handler))
}
