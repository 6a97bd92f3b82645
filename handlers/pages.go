package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Frontend pages. Each renders a template that talks to the JSON API
// under /api from the browser.

func IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"title": "Clothing Store"})
}

func ProductsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "products.html", gin.H{"title": "Товары"})
}

func ProductDetailPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	c.HTML(http.StatusOK, "product-detail.html", gin.H{"title": "Товар", "product_id": id})
}

func CartPage(c *gin.Context) {
	c.HTML(http.StatusOK, "cart.html", gin.H{"title": "Корзина"})
}

func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Вход"})
}

func RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Регистрация"})
}

func OrdersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "orders.html", gin.H{"title": "Заказы"})
}
