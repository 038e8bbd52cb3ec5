package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/models"
)

const (
	ProductCacheTTL  = 10 * time.Minute
	CategoryCacheTTL = 1 * time.Hour
)

// GetProductFromCache récupère un produit depuis Redis ou MySQL
func GetProductFromCache(productID int64) (*models.Product, error) {
	ctx := context.Background()
	key := productKey(productID)

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	// 2. Récupérer de MySQL
	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(product)
	database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return &product, nil
}

// InvalidateProduct purge un produit et la liste complète
func InvalidateProduct(productID int64) {
	ctx := context.Background()
	database.Redis.Del(ctx, productKey(productID), "products:all")
}

// InvalidateCategories purge toutes les vues catégories mises en cache
func InvalidateCategories() {
	ctx := context.Background()
	database.Redis.Del(ctx, "categories:all", "categories:heads")
}

func productKey(productID int64) string {
	return "product:" + strconv.FormatInt(productID, 10)
}
