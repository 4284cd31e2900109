// Package modio provides a client for the mod.io REST API.
//
// A client is created with a user agent and credentials, either a
// read-only API key or an OAuth 2 access token:
//
//	client, err := modio.NewClient("my-tool/1.0", modio.APIKey("key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mod, err := client.GetMod(ctx, 51, 158)
//
// Listings paginate transparently through iterators:
//
//	it := client.IterMods(51, modio.NewListOptions().SortDesc("date_updated"))
//	for it.Next(ctx) {
//		fmt.Println(it.Item().Name)
//	}
//	if err := it.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// Mod binaries are fetched through download actions, which resolve
// metadata to pre-signed URLs and stream the content with redirect
// handling:
//
//	out, _ := os.Create("mod.zip")
//	n, err := client.Download(ctx, modio.DownloadPrimary{GameID: 51, ModID: 158}, out)
//
// Errors are typed. Use the predicate helpers to branch on category
// instead of matching message strings:
//
//	if modio.IsRateLimited(err) { ... }
//	if modio.IsAuth(err) { ... }
//
// For the sandbox environment create the client with
// modio.WithHost(modio.TestHost).
package modio
