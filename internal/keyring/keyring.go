// Package keyring caches record passwords in the OS keyring.
//
// Entries are keyed by store ID and record name, so the same record
// name in two different databases never collides.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "kdfkit"

func account(storeID, name string) string {
	return storeID + "/" + name
}

// SavePassword stores a record's password in the OS keyring.
func SavePassword(storeID, name, password string) error {
	return keyring.Set(serviceName, account(storeID, name), password)
}

// GetPassword retrieves a record's password from the OS keyring.
func GetPassword(storeID, name string) (string, error) {
	return keyring.Get(serviceName, account(storeID, name))
}

// DeletePassword removes a record's password from the OS keyring.
func DeletePassword(storeID, name string) error {
	return keyring.Delete(serviceName, account(storeID, name))
}

// HasPassword checks if a password is stored for the record.
func HasPassword(storeID, name string) bool {
	_, err := keyring.Get(serviceName, account(storeID, name))
	return err == nil
}
