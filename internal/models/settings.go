package models

// SettingsID is the _id of the singleton settings document.
const SettingsID = "general"

type SocialMedia struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Snapchat  string `bson:"snapchat,omitempty" json:"snapchat,omitempty"`
	Tiktok    string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
}

// Settings is the singleton shop configuration stored under settings/general.
// A missing document is a valid state: no recipients, no fee, no minimum.
type Settings struct {
	ID             string        `bson:"_id,omitempty" json:"-"`
	ShopName       string        `bson:"shopName" json:"shopName"`
	ShopNameEn     string        `bson:"shopNameEn,omitempty" json:"shopNameEn,omitempty"`
	LogoURL        string        `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Phone          string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Email          string        `bson:"email,omitempty" json:"email,omitempty"`
	Address        string        `bson:"address,omitempty" json:"address,omitempty"`
	RecipientIDs   RecipientList `bson:"telegramChatIds" json:"telegramChatIds"`
	WorkingHours   string        `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	DeliveryFee    float64       `bson:"deliveryFee" json:"deliveryFee"`
	MinOrderAmount float64       `bson:"minOrderAmount" json:"minOrderAmount"`
	SocialMedia    SocialMedia   `bson:"socialMedia" json:"socialMedia"`
}

// PublicSettings is what the storefront may see.
type PublicSettings struct {
	ShopName       string      `json:"shopName"`
	ShopNameEn     string      `json:"shopNameEn,omitempty"`
	LogoURL        string      `json:"logoUrl,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Email          string      `json:"email,omitempty"`
	Address        string      `json:"address,omitempty"`
	WorkingHours   string      `json:"workingHours,omitempty"`
	DeliveryFee    float64     `json:"deliveryFee"`
	MinOrderAmount float64     `json:"minOrderAmount"`
	SocialMedia    SocialMedia `json:"socialMedia"`
}

func (s Settings) Public() PublicSettings {
	return PublicSettings{
		ShopName:       s.ShopName,
		ShopNameEn:     s.ShopNameEn,
		LogoURL:        s.LogoURL,
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		WorkingHours:   s.WorkingHours,
		DeliveryFee:    s.DeliveryFee,
		MinOrderAmount: s.MinOrderAmount,
		SocialMedia:    s.SocialMedia,
	}
}
