package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"benign_fashion_backend/internal/cache"
	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// 🟢 Créer un produit
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'price' sont obligatoires"})
		return
	}

	// ✅ Vérifie que la catégorie existe
	var category models.Category
	if err := database.DB.First(&category, p.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	if err := database.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	cache.InvalidateProduct(p.ID)
	log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("✅ Produit créé")

	c.JSON(http.StatusOK, p)
}

// 🔵 Lister les produits
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var products []models.Product
	if err := database.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	data, _ := json.Marshal(products)
	database.RedisClient.Set(ctx, cacheKey, data, 10*time.Minute)

	c.JSON(http.StatusOK, products)
}

// 🔵 Un produit par id
func GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := cache.GetProductFromCache(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// 🟠 Mettre à jour un produit (partiel : seuls les champs fournis changent)
func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var existing models.Product
	if err := database.DB.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		PhotoURL    *string  `json:"photoUrl"`
		CategoryID  *int64   `json:"categoryId"`
		Sizes       *string  `json:"sizes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		updates["price"] = *input.Price
	}
	if input.PhotoURL != nil {
		updates["photo_url"] = *input.PhotoURL
	}
	if input.CategoryID != nil {
		// ✅ Changement de catégorie : on revérifie qu'elle existe
		var category models.Category
		if err := database.DB.First(&category, *input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
			return
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Sizes != nil {
		updates["sizes"] = *input.Sizes
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune donnée à mettre à jour"})
		return
	}

	if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProduct(id)
	log.Info().Int64("product_id", id).Msg("✅ Produit mis à jour")

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// 🔴 Supprimer un produit
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	res := database.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(id)
	log.Info().Int64("product_id", id).Msg("🗑️ Produit supprimé")

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
