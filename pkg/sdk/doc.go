// Package sdk is the Go client for a remote gamedex HTTP API server.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//
//	page, _ := client.Search(ctx, sdk.SearchRequest{
//	    Query: "space trading",
//	    Mode:  sdk.ModeHybrid,
//	    Filters: &sdk.Filters{Genres: []string{"Strategy"}},
//	    Limit: 10,
//	})
//
// For an in-process engine without the HTTP hop, use the root
// gamedex package instead.
package sdk
