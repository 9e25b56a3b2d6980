// Package dcf provides a set of functions and types for discounted-cash-flow
// analysis of a rental-property investment: buying, renovating, leasing and
// eventually selling a house. It is designed to be local-first and auditable,
// every result being a pure function of a small set of scalar assumptions.
//
// The core functionalities include:
//   - Cash Flow Series: dated, signed monetary events (purchase, mortgage
//     draw and payments, rent, expenses, depreciation) built from periodic
//     schedules with optional compounding growth.
//   - Amortization: level-payment loan schedules producing per-period
//     payment, interest and outstanding-balance series.
//   - Aggregation: combining named series into a dated table with a Total
//     column, and collapsing it to annual granularity, summed for flow
//     quantities and last-value for stock quantities.
//   - Metrics: net present value and internal rate of return over a dated
//     cash-flow series.
//   - Scenario Analysis: a single entry point turning the scalar assumptions
//     into the four annual summary tables (operating cash flow, total cash
//     flow, taxable income, balance sheet) and the IRR of the project.
//
// This package serves as the foundational logic for the `dcfa` command-line
// tool, ensuring that all reports are consistent and based on a single
// source of truth.
package dcf
