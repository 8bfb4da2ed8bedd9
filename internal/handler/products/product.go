package products

import (
	"context"
	"net/http"
	"net/url"

	"inventory-hub/internal/api"
	"inventory-hub/internal/database"
	"inventory-hub/internal/events"
	"inventory-hub/internal/handler"
	"inventory-hub/internal/logging"
	"inventory-hub/internal/model"
	"inventory-hub/internal/store"

	"github.com/labstack/echo/v4"
)

const fieldsRequired = "All fields (name, category, price, quantity) are required"

var (
	listProducts          = store.ListProducts
	createProduct         = store.CreateProduct
	adjustProductQuantity = store.AdjustProductQuantity
	deleteProduct         = store.DeleteProduct
)

// publish 失敗只記錄，不影響 HTTP 回應
func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	if err := pub.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event not published", "type", e.Type, "name", e.Name, "error", err)
	}
}

// productName 取出 :name。
// echo 只在 RawPath 存在時以 escaped 路徑比對，此時 param 需自行 unescape
func productName(c echo.Context) string {
	raw := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// @Summary     List products
// @Description 依 id 排序回傳所有商品
// @Tags        products
// @Produce     json
// @Success     200 {array}  model.Product
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /product [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		products, err := listProducts(c.Request().Context(), db)
		if err != nil {
			return handler.Fail(c, "ListProducts", err)
		}
		return c.JSON(http.StatusOK, products)
	}
}

// @Summary     Add a product
// @Description 四個欄位皆必填；price 與 quantity 可為 0 但不可為負。同名商品不會被拒絕
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateProductRequest true "商品資料"
// @Success     201  {object} api.CreateProductResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /product [post]
func CreateProductHandler(db database.DB, pub events.Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "CreateProduct", fieldsRequired, "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "CreateProduct", fieldsRequired, "name", req.Name)
		}

		ctx := c.Request().Context()
		p, err := createProduct(ctx, db, &model.Product{
			Name:     req.Name,
			Category: req.Category,
			Price:    *req.Price,
			Quantity: *req.Quantity,
		})
		if err != nil {
			return handler.Fail(c, "CreateProduct", err, "name", req.Name)
		}

		publish(ctx, pub, events.Created(p.Name, p.Category, p.Price, p.Quantity))
		return c.JSON(http.StatusCreated, api.CreateProductResponse{Message: "Product added successfully", ID: p.ID})
	}
}

// @Summary     Adjust product quantity
// @Description changeType 為 add 或 deduct；deduct 超過庫存時數量歸 0。quantityChange 可為數字或字串，須為正整數
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       name path     string                    true "商品名稱"
// @Param       body body     api.AdjustQuantityRequest true "調整內容"
// @Success     200  {object} api.AdjustQuantityResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /products/{name}/quantity [put]
func AdjustQuantityHandler(db database.DB, pub events.Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := productName(c)
		var req api.AdjustQuantityRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "AdjustQuantity", "Invalid quantity change amount", "name", name, "bind_error", err)
		}
		delta, ok := req.QuantityChange.PositiveInt()
		if !ok {
			return handler.BadRequest(c, "AdjustQuantity", "Invalid quantity change amount", "name", name, "quantityChange", string(req.QuantityChange))
		}
		change := model.ChangeType(req.ChangeType)
		if !change.Valid() {
			return handler.BadRequest(c, "AdjustQuantity", "Invalid change type", "name", name, "changeType", req.ChangeType)
		}

		ctx := c.Request().Context()
		quantity, err := adjustProductQuantity(ctx, db, name, change, delta)
		if err != nil {
			return handler.Fail(c, "AdjustQuantity", err, "name", name)
		}

		publish(ctx, pub, events.QuantityAdjusted(name, quantity))
		return c.JSON(http.StatusOK, api.AdjustQuantityResponse{
			Message:     "Product quantity updated successfully",
			Name:        name,
			NewQuantity: quantity,
		})
	}
}

// @Summary     Delete a product
// @Tags        products
// @Produce     json
// @Param       name path     string true "商品名稱"
// @Success     200  {object} api.MessageResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /product/{name} [delete]
func DeleteProductHandler(db database.DB, pub events.Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := productName(c)
		ctx := c.Request().Context()
		if err := deleteProduct(ctx, db, name); err != nil {
			return handler.Fail(c, "DeleteProduct", err, "name", name)
		}

		publish(ctx, pub, events.Deleted(name))
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deleted successfully"})
	}
}
