// Package stylist provides an embedded Go client for the stylist product
// engine. It loads a catalog once and answers facet filter, search and
// pairing queries in process, without running the HTTP server.
//
// Typical usage:
//
//	client, err := stylist.New(
//		stylist.WithCatalogPath("data/products.csv"),
//	)
//	if err != nil { ... }
//
//	res := client.Filter(ctx, stylist.Query{Gender: "women", Category: "hoodie"})
//	for _, p := range res.Products {
//		fmt.Println(p.Name, p.Price)
//	}
package stylist
