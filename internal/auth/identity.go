package auth

// MerchantRef is the nested merchant representation some credential
// issuers embed instead of a flat merchant id.
type MerchantRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// OutletRef is the nested outlet representation.
type OutletRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Identity is the authenticated principal for one request. It is built
// from a verified credential, never persisted, and treated as
// immutable for the request's duration. A zero merchant or outlet id
// means "not bound".
type Identity struct {
	ID         int64        `json:"id"`
	Email      string       `json:"email"`
	Role       Role         `json:"-"`
	MerchantID int64        `json:"merchant_id,omitempty"`
	OutletID   int64        `json:"outlet_id,omitempty"`
	Merchant   *MerchantRef `json:"merchant,omitempty"`
	Outlet     *OutletRef   `json:"outlet,omitempty"`
}

// EffectiveMerchantID reconciles the flat merchant id with the nested
// ref. The flat field wins when set.
func (id Identity) EffectiveMerchantID() int64 {
	if id.MerchantID != 0 {
		return id.MerchantID
	}
	if id.Merchant != nil {
		return id.Merchant.ID
	}
	return 0
}

// EffectiveOutletID reconciles the flat outlet id with the nested ref.
func (id Identity) EffectiveOutletID() int64 {
	if id.OutletID != 0 {
		return id.OutletID
	}
	if id.Outlet != nil {
		return id.Outlet.ID
	}
	return 0
}
