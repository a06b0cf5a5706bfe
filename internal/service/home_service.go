package service

import (
	"context"

	"chmfc/internal/core"

	"golang.org/x/sync/errgroup"
)

// Home is the landing page payload. Every part is optional.
type Home struct {
	LatestNews      *core.NewsArticle `json:"latest_news"`
	NextMatch       *core.Match       `json:"next_match"`
	LiveMatch       *core.Match       `json:"live_match"`
	FeaturedProduct *core.Product     `json:"featured_product"`
}

type HomeService struct {
	news     *NewsService
	schedule *ScheduleService
	products core.ProductRepository
}

func NewHomeService(news *NewsService, schedule *ScheduleService, products core.ProductRepository) *HomeService {
	return &HomeService{news: news, schedule: schedule, products: products}
}

// Home loads the four landing page widgets concurrently
func (s *HomeService) Home(ctx context.Context) (*Home, error) {
	var out Home
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.LatestNews, err = s.news.Latest()
		return err
	})
	g.Go(func() (err error) {
		out.NextMatch, err = s.schedule.NextMatch()
		return err
	})
	g.Go(func() (err error) {
		out.LiveMatch, err = s.schedule.LiveMatch()
		return err
	})
	g.Go(func() error {
		products, err := s.products.List()
		if err != nil {
			return err
		}
		if len(products) > 0 {
			out.FeaturedProduct = products[0]
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
