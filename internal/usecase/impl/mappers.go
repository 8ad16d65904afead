package impl

import (
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"
	"inventory/internal/validation"
)

func toUserResponse(user *entity.User) *usecase.UserResponse {
	resp := &usecase.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Roles:       user.Roles.ToStrings(),
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.DateOfBirth != nil {
		resp.DateOfBirth = user.DateOfBirth.Format(validation.DateLayout)
	}

	if user.SupplierProfile != nil && user.SupplierProfile.ID != 0 {
		id := user.SupplierProfile.ID
		resp.SupplierProfileID = &id
	}

	return resp
}

func toUserResponses(users []*entity.User) []*usecase.UserResponse {
	out := make([]*usecase.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}

// applyUserRequest copies the editable fields of req onto user. Password and roles are handled by the caller.
func applyUserRequest(user *entity.User, req *usecase.UserRequest) error {
	dateOfBirth, err := validation.ParseDate(req.DateOfBirth)
	if err != nil {
		return domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "dateOfBirth",
			Message: "must be a past date in dd-MM-yyyy format",
		})
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FullName = req.FullName
	user.DateOfBirth = dateOfBirth
	user.PhoneNumber = req.PhoneNumber
	user.Address = req.Address

	return nil
}

func toProductResponse(product *entity.Product) *usecase.ProductResponse {
	return &usecase.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		SupplierID:    product.SupplierID,
	}
}

func toProductResponses(products []*entity.Product) []*usecase.ProductResponse {
	out := make([]*usecase.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

func fromProductRequest(req *usecase.ProductRequest) *entity.Product {
	return &entity.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		SupplierID:    req.SupplierID,
	}
}

func toOrderResponse(order *entity.Order) *usecase.OrderResponse {
	return &usecase.OrderResponse{
		ID:          order.ID,
		OrderDate:   order.OrderDate.Format(usecase.OrderDateLayout),
		TotalAmount: order.TotalAmount,
		ProductIDs:  order.ProductIDs(),
		UserID:      order.UserID,
	}
}

func toOrderResponses(orders []*entity.Order) []*usecase.OrderResponse {
	out := make([]*usecase.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

func toSupplierResponse(supplier *entity.SupplierProfile) *usecase.SupplierResponse {
	productIDs := supplier.ProductIDs
	if productIDs == nil {
		productIDs = []int64{}
	}

	return &usecase.SupplierResponse{
		ID:            supplier.ID,
		Name:          supplier.Name,
		ContactNumber: supplier.ContactNumber,
		Address:       supplier.Address,
		UserID:        supplier.UserID,
		ProductIDs:    productIDs,
	}
}

func toSupplierResponses(suppliers []*entity.SupplierProfile) []*usecase.SupplierResponse {
	out := make([]*usecase.SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		out = append(out, toSupplierResponse(supplier))
	}

	return out
}
