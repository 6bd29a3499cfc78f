// Command fixturecheck lints the embedded fixture data: duplicate product ids
// across collections, products without a usable price, and categories that
// resolve to an empty product list.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/vellum-supply/storefront/internal/catalog"
	"github.com/vellum-supply/storefront/internal/fixtures"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	collections, err := fixtures.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load fixtures")
	}
	svc, err := catalog.NewService(collections)
	if err != nil {
		logger.Fatal().Err(err).Msg("build catalog")
	}

	problems := 0

	seen := map[string]string{}
	for _, p := range svc.List(catalog.ListParams{}).Items {
		if prev, ok := seen[p.ID]; ok {
			logger.Error().Str("id", p.ID).Str("collection", p.Collection).Str("also_in", prev).Msg("duplicate product id")
			problems++
		}
		seen[p.ID] = p.Collection

		if !p.PriceKnown && p.PriceLabel == "" {
			logger.Error().Str("id", p.ID).Str("name", p.Name).Msg("product has neither price nor price label")
			problems++
		}
		if p.Name == "" {
			logger.Error().Str("id", p.ID).Msg("product has no name")
			problems++
		}
	}

	for _, c := range svc.Categories() {
		products := svc.ProductsForCategory(c.ID)
		if len(products) == 0 {
			logger.Warn().Str("category", c.ID).Msg("category routes to no products")
		}
	}

	if problems > 0 {
		logger.Fatal().Int("problems", problems).Msg("fixture check failed")
	}
	logger.Info().Int("products", svc.ProductCount()).Int("categories", len(svc.Categories())).Msg("fixtures ok")
}
