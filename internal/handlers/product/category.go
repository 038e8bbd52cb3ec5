package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"benign_fashion_backend/internal/cache"
	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// 🟢 Créer une catégorie (tête ou sous-catégorie rattachée à une tête)
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" || cat.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'slug' sont obligatoires"})
		return
	}

	// Une sous-catégorie doit pointer vers une catégorie de tête existante
	if !cat.IsHead {
		if cat.ParentID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Une sous-catégorie doit référencer une catégorie de tête"})
			return
		}
		var head models.Category
		if err := database.DB.First(&head, *cat.ParentID).Error; err != nil || !head.IsHead {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie de tête introuvable"})
			return
		}
	}

	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	cache.InvalidateCategories()
	log.Info().Int64("category_id", cat.ID).Str("name", cat.Name).Msg("✅ Catégorie créée")

	c.JSON(http.StatusOK, cat)
}

// 🔵 Lister les catégories
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	// Cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Category
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var cats []models.Category
	if err := database.DB.Order("id ASC").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	data, _ := json.Marshal(cats)
	database.RedisClient.Set(ctx, cacheKey, data, cache.CategoryCacheTTL)

	c.JSON(http.StatusOK, cats)
}

// 🔵 Lister les catégories de tête
func GetHeadCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:heads"

	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Category
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var heads []models.Category
	if err := database.DB.Where("is_head = ?", true).Order("id ASC").Find(&heads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	data, _ := json.Marshal(heads)
	database.RedisClient.Set(ctx, cacheKey, data, cache.CategoryCacheTTL)

	c.JSON(http.StatusOK, heads)
}

// 🔵 Sous-catégories d'une tête
func GetSubcategories(c *gin.Context) {
	headID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || headID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var subs []models.Category
	if err := database.DB.Where("parent_id = ?", headID).Order("id ASC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture sous-catégories"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// 🟠 Mettre à jour une catégorie (partiel : seuls les champs fournis changent)
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var existing models.Category
	if err := database.DB.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Slug     *string `json:"slug"`
		IsHead   *bool   `json:"isHead"`
		ParentID *int64  `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Slug != nil {
		updates["slug"] = *input.Slug
	}
	if input.IsHead != nil {
		updates["is_head"] = *input.IsHead
	}
	if input.ParentID != nil {
		// ✅ Nouveau rattachement : la tête doit exister
		var head models.Category
		if err := database.DB.First(&head, *input.ParentID).Error; err != nil || !head.IsHead {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie de tête introuvable"})
			return
		}
		updates["parent_id"] = *input.ParentID
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune donnée à mettre à jour"})
		return
	}

	if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie"})
		return
	}

	cache.InvalidateCategories()
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// 🔴 Supprimer une catégorie (refusé si des produits y sont rattachés)
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var productCount int64
	database.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount)
	if productCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Des produits sont encore rattachés à cette catégorie"})
		return
	}

	res := database.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	cache.InvalidateCategories()
	log.Info().Int64("category_id", id).Msg("🗑️ Catégorie supprimée")

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
