package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/query"
)

const LoaderName = "stock"

const cacheKey = "all"

type (
	Repository interface {
		Products() []Product
		Categories() []Category
	}

	Service struct {
		repo        Repository
		loader      *fetch.Loader[Catalog]
		log         core.Logger
		submitDelay time.Duration
	}
)

func NewService(repo Repository, logger core.Logger, conf *core.Config, metrics *fetch.Metrics) (*Service, error) {
	svc := &Service{repo: repo, log: logger, submitDelay: conf.Submit.Delay}
	loader, err := fetch.NewLoader(LoaderName, svc.fetch, fetch.Options{
		Latency:   conf.Fetch.StockLatency,
		CacheSize: conf.Fetch.CacheSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	svc.loader = loader
	return svc, nil
}

// fetch builds the catalog, and its category index, once per load.
func (svc *Service) fetch(context.Context, string) (Catalog, error) {
	return NewCatalog(svc.repo.Products(), svc.repo.Categories()), nil
}

func (svc *Service) Load(ctx context.Context) (Catalog, error) {
	return svc.loader.Get(ctx, cacheKey)
}

func (svc *Service) State() fetch.State[Catalog] {
	return svc.loader.State(cacheKey)
}

func (svc *Service) Refresh(ctx context.Context) error {
	_, err := svc.loader.Refetch(ctx, cacheKey)
	return err
}

func (svc *Service) Query(ctx context.Context, req query.Request) (View, error) {
	c, err := svc.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return Derive(c, req)
}

func (svc *Service) Categories(ctx context.Context) ([]CategoryBreakdown, error) {
	c, err := svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryOverview(c), nil
}

func (svc *Service) Export(ctx context.Context, req query.Request) ([]byte, error) {
	view, err := svc.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	return csvexport.Render(Columns, view.Items)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Row, error) {
	c, err := svc.Load(ctx)
	if err != nil {
		return Row{}, err
	}
	for _, r := range c.Rows() {
		if r.Product.ID == id {
			return r, nil
		}
	}
	return Row{}, core.NewNotFoundError("product", id)
}

// RemoveProduct acknowledges the removal of a product. Nothing is persisted.
func (svc *Service) RemoveProduct(ctx context.Context, id string) (core.Acknowledgement, error) {
	r, err := svc.GetByID(ctx, id)
	if err != nil {
		return core.Acknowledgement{}, err
	}
	if err := core.Wait(ctx, svc.submitDelay); err != nil {
		return core.Acknowledgement{}, err
	}
	svc.log.Info("product removal accepted", map[string]interface{}{"product": r.Product.ID, "sku": r.Product.SKU})
	return core.NewAcknowledgement("stock.remove_product", fmt.Sprintf("removal of %s accepted", r.Product.Name)), nil
}
