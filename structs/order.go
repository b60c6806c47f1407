package structs

type OrderItemRequest struct {
	ProductId string `json:"product_id" validate:"required,uuid4"`
	VariantId string `json:"variant_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`

	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	CustomerNote string `json:"note,omitempty" validate:"omitempty,max=500"`

	Address1 string `json:"address1" validate:"required,min=2,max=200"`
	Address2 string `json:"address2,omitempty" validate:"omitempty,max=200"`
	City     string `json:"city" validate:"required,min=2,max=100"`
	State    string `json:"state" validate:"required,min=2,max=100"`
	Pincode  string `json:"pincode" validate:"required,min=4,max=12"`
	Country  string `json:"country,omitempty" validate:"omitempty,len=2"`
}
