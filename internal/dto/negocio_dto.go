package dto

type NegocioRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=120"`
	Address     string `json:"address"     validate:"max=200"`
	Phone       string `json:"phone"       validate:"max=30"`
	OpeningTime string `json:"openingTime" validate:"omitempty,datetime=15:04"`
	ClosingTime string `json:"closingTime" validate:"omitempty,datetime=15:04"`
}

type NegocioResponse struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}
