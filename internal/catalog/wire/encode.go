package wire

import (
	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/product"
)

// EncodeProduct maps a domain product onto the wire shape.
func EncodeProduct(p *product.Product) ProductNode {
	node := ProductNode{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Tags:        p.Tags,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PriceRange: PriceRange{
			MinVariantPrice: p.PriceRange.Min,
			MaxVariantPrice: p.PriceRange.Max,
		},
	}
	for _, img := range p.Images {
		node.Images.Edges = append(node.Images.Edges, struct {
			Node ImageNode `json:"node"`
		}{Node: ImageNode{URL: img.URL, AltText: img.AltText}})
	}
	for _, v := range p.Variants {
		node.Variants.Edges = append(node.Variants.Edges, struct {
			Node VariantNode `json:"node"`
		}{Node: VariantNode{
			ID:               v.ID,
			Title:            v.Title,
			Price:            v.Price,
			CompareAtPrice:   v.CompareAtPrice,
			AvailableForSale: v.Available,
			SelectedOptions:  encodeSelectedOptions(v.SelectedOptions),
		}})
	}
	for _, opt := range p.Options {
		node.Options = append(node.Options, ProductOption{Name: opt.Name, Values: opt.Values})
	}
	return node
}

// EncodeProducts wraps products in a connection envelope.
func EncodeProducts(products []*product.Product) ProductConnection {
	conn := ProductConnection{}
	for _, p := range products {
		conn.Edges = append(conn.Edges, struct {
			Node ProductNode `json:"node"`
		}{Node: EncodeProduct(p)})
	}
	return conn
}

// EncodeCart maps a domain cart onto the wire shape.
func EncodeCart(c *cart.Cart) *Cart {
	out := &Cart{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
		Cost: CartCost{
			TotalAmount:    c.Cost.Total,
			SubtotalAmount: c.Cost.Subtotal,
			TotalTaxAmount: c.Cost.Tax,
		},
	}
	for _, l := range c.Lines {
		var image *ImageNode
		if l.Merchandise.Image != nil {
			image = &ImageNode{URL: l.Merchandise.Image.URL, AltText: l.Merchandise.Image.AltText}
		}
		out.Lines.Edges = append(out.Lines.Edges, struct {
			Node CartLineNode `json:"node"`
		}{Node: CartLineNode{
			ID:       l.ID,
			Quantity: l.Quantity,
			Cost:     LineCost{TotalAmount: l.Cost},
			Merchandise: Merchandise{
				ID:    l.Merchandise.VariantID,
				Title: l.Merchandise.VariantTitle,
				Image: image,
				Product: MerchandiseProduct{
					ID:     l.Merchandise.ProductID,
					Title:  l.Merchandise.ProductTitle,
					Handle: l.Merchandise.ProductHandle,
				},
				Price:           l.Merchandise.Price,
				SelectedOptions: encodeSelectedOptions(l.Merchandise.SelectedOptions),
			},
		}})
	}
	return out
}

// EncodeCustomer maps a domain customer onto the wire shape.
func EncodeCustomer(c *customer.Customer) *Customer {
	out := &Customer{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, Address{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Company:   a.Company,
			Address1:  a.Address1,
			Address2:  a.Address2,
			City:      a.City,
			Province:  a.Province,
			Country:   a.Country,
			Zip:       a.Zip,
			Phone:     a.Phone,
		})
	}
	for _, o := range c.Orders {
		node := OrderNode{
			ID:                o.ID,
			Name:              o.Name,
			OrderNumber:       o.OrderNumber,
			ProcessedAt:       o.ProcessedAt,
			FinancialStatus:   o.FinancialStatus,
			FulfillmentStatus: o.FulfillmentStatus,
			TotalPrice:        o.TotalPrice,
		}
		for _, li := range o.LineItems {
			item := OrderLineItemNode{
				Title:    li.Title,
				Quantity: li.Quantity,
			}
			item.Variant.Price = li.Price
			item.Variant.Product.Handle = li.ProductHandle
			if li.Image != nil {
				item.Variant.Image = &ImageNode{URL: li.Image.URL, AltText: li.Image.AltText}
			}
			node.LineItems.Edges = append(node.LineItems.Edges, struct {
				Node OrderLineItemNode `json:"node"`
			}{Node: item})
		}
		out.Orders.Edges = append(out.Orders.Edges, struct {
			Node OrderNode `json:"node"`
		}{Node: node})
	}
	return out
}

// EncodeUserErrors maps domain user errors onto the wire shape. Always
// returns a non-nil slice so the payload serializes as [].
func EncodeUserErrors(errs []catalog.UserError) []UserError {
	out := make([]UserError, 0, len(errs))
	for _, e := range errs {
		out = append(out, UserError{Field: e.Field, Message: e.Message})
	}
	return out
}

func encodeSelectedOptions(opts []product.SelectedOption) []SelectedOption {
	out := make([]SelectedOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, SelectedOption{Name: o.Name, Value: o.Value})
	}
	return out
}
