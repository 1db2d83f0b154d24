package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"starburger/internal/caching"
	"starburger/internal/models"
	"starburger/internal/repositories"
)

const (
	menuTTL        = 5 * time.Minute
	imageURLExpiry = time.Hour
)

type ProductServiceInterface interface {
	ListMenu(ctx context.Context) ([]*models.ProductListing, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	minioService MinioService
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, minioService MinioService, cacheService caching.CacheService) ProductServiceInterface {
	return &productService{
		productRepo:  productRepo,
		minioService: minioService,
		cacheService: cacheService,
	}
}

// ListMenu returns the public menu: products available in at least one
// restaurant, with category and a presigned image URL. Served from redis when
// warm.
func (s *productService) ListMenu(ctx context.Context) ([]*models.ProductListing, error) {
	cached, err := s.cacheService.GetMenu(ctx)
	if err != nil {
		log.Printf("Failed to read menu cache: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	categories := make(map[uuid.UUID]*models.ProductCategory)
	listings := make([]*models.ProductListing, 0, len(products))
	for _, product := range products {
		listing := &models.ProductListing{Product: *product}

		if product.CategoryID != nil {
			category, ok := categories[*product.CategoryID]
			if !ok {
				category, err = s.productRepo.GetCategory(ctx, *product.CategoryID)
				if err != nil {
					return nil, err
				}
				categories[*product.CategoryID] = category
			}
			listing.Category = category
		}

		if product.ImageKey != nil {
			url, err := s.minioService.GetPresignedURL(ctx, ProductImageBucket, *product.ImageKey, imageURLExpiry)
			if err != nil {
				log.Printf("Failed to presign image for product %s: %v", product.ID, err)
			} else {
				listing.ImageURL = &url
			}
		}

		listings = append(listings, listing)
	}

	if cacheErr := s.cacheService.SetMenu(ctx, listings, menuTTL); cacheErr != nil {
		log.Printf("Failed to cache menu: %v", cacheErr)
	}
	return listings, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, limit, offset)
}

func (s *productService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

// UploadProductImage stores the image in object storage and records its key
// on the product.
func (s *productService) UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return ErrProductNotFound
	}

	objectName := fmt.Sprintf("products/%s", id)
	if err := s.minioService.UploadObject(ctx, ProductImageBucket, objectName, reader, size, contentType); err != nil {
		return err
	}
	if err := s.productRepo.SetImageKey(ctx, id, objectName); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *productService) invalidateMenu(ctx context.Context) {
	if err := s.cacheService.InvalidateMenu(ctx); err != nil {
		log.Printf("Failed to invalidate menu cache: %v", err)
	}
}
