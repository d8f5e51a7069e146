package tsexports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportsTSX(t *testing.T) {
	src := []byte(`import React from 'react';
import { cn } from '../utils';

export interface AlertProps { variant?: 'info' | 'error' }
export type AlertVariant = AlertProps['variant'];

export const Alert = ({ variant }: AlertProps) => <div role="alert" className={cn(variant)} />;

function helper() {}

export { helper as alertHelper };
export default Alert;
`)
	got := Extractor{}.Exports("Alert.tsx", src)
	assert.Equal(t, []string{"Alert", "AlertProps", "AlertVariant", "alertHelper", "default"}, got)
}

func TestExportsTS(t *testing.T) {
	src := []byte(`export function useToggle(initial: boolean) { return initial; }
export enum Placement { Top, Bottom }
export * as tokens from './tokens';
`)
	got := Extractor{}.Exports("hooks.ts", src)
	assert.Equal(t, []string{"Placement", "tokens", "useToggle"}, got)
}

func TestExportsNone(t *testing.T) {
	assert.Nil(t, Extractor{}.Exports("empty.ts", []byte("const x = 1;\n")))
}
