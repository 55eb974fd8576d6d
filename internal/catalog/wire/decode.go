package wire

import (
	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/product"
)

// DecodeProduct flattens a wire product node into the domain model.
func DecodeProduct(node ProductNode) *product.Product {
	p := &product.Product{
		ID:          node.ID,
		Handle:      node.Handle,
		Title:       node.Title,
		Description: node.Description,
		Tags:        node.Tags,
		ProductType: node.ProductType,
		Vendor:      node.Vendor,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
		PriceRange: product.PriceRange{
			Min: node.PriceRange.MinVariantPrice,
			Max: node.PriceRange.MaxVariantPrice,
		},
	}
	for _, e := range node.Images.Edges {
		p.Images = append(p.Images, product.Image{URL: e.Node.URL, AltText: e.Node.AltText})
	}
	for _, e := range node.Variants.Edges {
		p.Variants = append(p.Variants, &product.Variant{
			ID:              e.Node.ID,
			Title:           e.Node.Title,
			Price:           e.Node.Price,
			CompareAtPrice:  e.Node.CompareAtPrice,
			Available:       e.Node.AvailableForSale,
			SelectedOptions: decodeSelectedOptions(e.Node.SelectedOptions),
		})
	}
	for _, o := range node.Options {
		p.Options = append(p.Options, product.Option{Name: o.Name, Values: o.Values})
	}
	return p
}

// DecodeProducts flattens a product connection.
func DecodeProducts(conn ProductConnection) []*product.Product {
	out := make([]*product.Product, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, DecodeProduct(e.Node))
	}
	return out
}

// DecodeCart flattens a wire cart into the domain model.
func DecodeCart(w *Cart) *cart.Cart {
	if w == nil {
		return nil
	}
	c := &cart.Cart{
		ID:            w.ID,
		CheckoutURL:   w.CheckoutURL,
		TotalQuantity: w.TotalQuantity,
		Cost: cart.Cost{
			Subtotal: w.Cost.SubtotalAmount,
			Tax:      w.Cost.TotalTaxAmount,
			Total:    w.Cost.TotalAmount,
		},
	}
	for _, e := range w.Lines.Edges {
		var image *product.Image
		if e.Node.Merchandise.Image != nil {
			image = &product.Image{
				URL:     e.Node.Merchandise.Image.URL,
				AltText: e.Node.Merchandise.Image.AltText,
			}
		}
		c.Lines = append(c.Lines, &cart.Line{
			ID:       e.Node.ID,
			Quantity: e.Node.Quantity,
			Cost:     e.Node.Cost.TotalAmount,
			Merchandise: cart.Merchandise{
				VariantID:       e.Node.Merchandise.ID,
				VariantTitle:    e.Node.Merchandise.Title,
				ProductID:       e.Node.Merchandise.Product.ID,
				ProductTitle:    e.Node.Merchandise.Product.Title,
				ProductHandle:   e.Node.Merchandise.Product.Handle,
				Image:           image,
				Price:           e.Node.Merchandise.Price,
				SelectedOptions: decodeSelectedOptions(e.Node.Merchandise.SelectedOptions),
			},
		})
	}
	return c
}

// DecodeCustomer flattens a wire customer into the domain model.
func DecodeCustomer(w *Customer) *customer.Customer {
	if w == nil {
		return nil
	}
	c := &customer.Customer{
		ID:        w.ID,
		Email:     w.Email,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Phone:     w.Phone,
	}
	for _, a := range w.Addresses {
		c.Addresses = append(c.Addresses, customer.Address{
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
	for _, e := range w.Orders.Edges {
		order := customer.Order{
			ID:                e.Node.ID,
			Name:              e.Node.Name,
			OrderNumber:       e.Node.OrderNumber,
			ProcessedAt:       e.Node.ProcessedAt,
			FinancialStatus:   e.Node.FinancialStatus,
			FulfillmentStatus: e.Node.FulfillmentStatus,
			TotalPrice:        e.Node.TotalPrice,
		}
		for _, li := range e.Node.LineItems.Edges {
			var image *product.Image
			if li.Node.Variant.Image != nil {
				image = &product.Image{
					URL:     li.Node.Variant.Image.URL,
					AltText: li.Node.Variant.Image.AltText,
				}
			}
			order.LineItems = append(order.LineItems, customer.OrderLineItem{
				Title:         li.Node.Title,
				Quantity:      li.Node.Quantity,
				Price:         li.Node.Variant.Price,
				Image:         image,
				ProductHandle: li.Node.Variant.Product.Handle,
			})
		}
		c.Orders = append(c.Orders, order)
	}
	return c
}

// DecodeUserErrors maps wire user errors back to the domain shape.
func DecodeUserErrors(errs []UserError) []catalog.UserError {
	out := make([]catalog.UserError, 0, len(errs))
	for _, e := range errs {
		out = append(out, catalog.UserError{Field: e.Field, Message: e.Message})
	}
	return out
}

func decodeSelectedOptions(opts []SelectedOption) []product.SelectedOption {
	out := make([]product.SelectedOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, product.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return out
}
