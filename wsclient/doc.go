// Package wsclient is the whiteboard's network channel: a websocket carrying
// zlib-compressed JSON frames.
//
// Outbound frames are {type, data, id} where id is a fresh correlation id.
// Inbound frames either answer a request ({reply_to, data}) or push an event
// ({event, data}). Replies resolve the callback registered under their id;
// events fan out to every subscriber.
//
//	c := wsclient.New("ws://localhost:4000/ws")
//	if err := c.Initialize(ctx); err != nil {
//		return err
//	}
//	defer c.Close()
//	jr, err := c.Join(ctx, slug, token)
package wsclient
