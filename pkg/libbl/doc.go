//
// libbl is a client that interacts with the bucketlist API.
//

// Create client
//
//	client, err := libbl.NewDefaultClient("https://bucketlist.nas.lan")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authenticate
//
//	err = client.Login("lena", "password42")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Create a bucketlist and its items
//
//	list, err := client.CreateBucketlist("Extreme sports", "Before 40")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	item, err := client.CreateItem(list.ID, "Paragliding", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Complete them
//
//	_, err = client.UpdateItem(list.ID, item.ID, libbl.UpdateItem{Done: libbl.Bool(true)})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = client.UpdateBucketlist(list.ID, libbl.UpdateBucketlist{Done: libbl.Bool(true)})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Search bucketlists
//
//	page, err := client.Bucketlists(libbl.ListParams{Query: "sports", Page: 1, Limit: 10})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, list := range page.Bucketlists {
//		fmt.Println(list.ID, list.Name, list.Done)
//	}
package libbl
