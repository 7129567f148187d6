package fetchers

import "reflect"

// isNilClient also catches typed nil pointers, like a nil *ethclient.Client, wrapped in the client interfaces
func isNilClient(client interface{}) bool {
	if client == nil {
		return true
	}

	value := reflect.ValueOf(client)
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
