package broker

import "sync"

// Rooms is the grouping primitive room membership is delegated to: a room
// is just the set of connections that were told to join its id. Rooms are
// created on first join and reaped once the last member leaves; no other
// room state exists server-side.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Conn
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms: make(map[string]map[string]Conn),
	}
}

// Join - adds the connection to the room, creating the room if needed.
func (that *Rooms) Join(roomID string, conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	members, ok := that.rooms[roomID]
	if !ok {
		members = make(map[string]Conn)
		that.rooms[roomID] = members
	}

	members[conn.ID()] = conn
}

// Leave - removes the participant from one room, reaping it when empty.
func (that *Rooms) Leave(roomID, participantID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	members, ok := that.rooms[roomID]
	if !ok {
		return
	}

	delete(members, participantID)
	if len(members) == 0 {
		delete(that.rooms, roomID)
	}
}

// LeaveAll - removes the participant from every room they are a member of.
func (that *Rooms) LeaveAll(participantID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for roomID, members := range that.rooms {
		delete(members, participantID)
		if len(members) == 0 {
			delete(that.rooms, roomID)
		}
	}
}

// Broadcast - delivers data to every room member except the sender and
// reports how many deliveries succeeded. An unknown room id is a no-op.
// Members whose connection rejects the send are dropped from the room so
// one dead connection cannot keep failing the others.
func (that *Rooms) Broadcast(roomID, senderID string, data []byte) int {
	that.mu.RLock()
	members, ok := that.rooms[roomID]
	if !ok {
		that.mu.RUnlock()
		return 0
	}

	receivers := make([]Conn, 0, len(members))
	for id, conn := range members {
		if id == senderID {
			continue
		}
		receivers = append(receivers, conn)
	}
	that.mu.RUnlock()

	delivered := 0
	for _, conn := range receivers {
		if err := conn.Send(data); err != nil {
			that.Leave(roomID, conn.ID())
			continue
		}
		delivered++
	}

	return delivered
}

// Stats - reports the number of rooms and total room memberships.
func (that *Rooms) Stats() (rooms, members int) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	rooms = len(that.rooms)
	for _, roomMembers := range that.rooms {
		members += len(roomMembers)
	}

	return rooms, members
}
