// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"fmt"
	"net/url"
)

// Values flattens params into URL values, for use as a form body or a
// query string.
//
// The supported params types are url.Values, map[string][]string,
// map[string]string and map[string]interface{}. In the last case each
// value may be a string, a []string, a []interface{} (one value per
// element) or nil (an empty value); any other value is formatted with
// fmt.Sprint. A nil params yields nil.
func Values(params interface{}) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string][]string:
		return url.Values(p), nil
	case map[string]string:
		v := make(url.Values, len(p))
		for key, value := range p {
			v.Set(key, value)
		}
		return v, nil
	case map[string]interface{}:
		v := make(url.Values, len(p))
		for key, value := range p {
			switch x := value.(type) {
			case nil:
				v.Set(key, "")
			case string:
				v.Set(key, x)
			case []string:
				v[key] = append([]string(nil), x...)
			case []interface{}:
				for _, elem := range x {
					v.Add(key, fmt.Sprint(elem))
				}
			default:
				v.Set(key, fmt.Sprint(x))
			}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("restkit/body: cannot flatten %T into url values", params)
	}
}
